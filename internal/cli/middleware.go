package cli

import (
	"context"
	"fmt"
)

// Handler is a command invocation function. Middleware resolve values from
// the active context chain and prepend them to args, so composition order
// alone determines the final argument order.
type Handler func(ctx context.Context, args []any) error

// Middleware wraps a Handler, typically to inject one resolved argument.
type Middleware func(next Handler) Handler

// Chain composes middleware left to right: the first element becomes the
// outermost wrapper, so its injected argument lands furthest from the
// front. Each wrapper resolves independently of the others.
func Chain(middleware ...Middleware) Middleware {
	return func(h Handler) Handler {
		for i := len(middleware) - 1; i >= 0; i-- {
			h = middleware[i](h)
		}

		return h
	}
}

// PassContext injects the active *Context as the leading argument of the
// wrapped handler.
func PassContext() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, args []any) error {
			c, err := Current(ctx)
			if err != nil {
				return err
			}

			return next(ctx, prepend(c, args))
		}
	}
}

// PassObject injects the nearest *T state object from the active context
// chain as the leading argument. Without ensure, a missing object is a
// fatal configuration error naming the type; with ensure, a fresh T is
// constructed on the invoking context first.
func PassObject[T any](ensure bool) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, args []any) error {
			c, err := Current(ctx)
			if err != nil {
				return err
			}

			var obj *T

			if ensure {
				obj = EnsureObject[T](c)
			} else {
				found, ok := FindObject[*T](c)
				if !ok {
					return &MissingObjectError{Type: typeName[T]()}
				}

				obj = found
			}

			return next(ctx, prepend(obj, args))
		}
	}
}

// PassObj injects the raw state object of the nearest context that holds
// one, whatever its type. A chain with no state object at all is a fatal
// configuration error.
func PassObj() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, args []any) error {
			c, err := Current(ctx)
			if err != nil {
				return err
			}

			obj, ok := FindObject[any](c)
			if !ok || obj == nil {
				return fmt.Errorf("%w: no state object set anywhere in the context chain", ErrMissingObject)
			}

			return next(ctx, prepend(obj, args))
		}
	}
}

// Bind adapts a typed command body to a Handler, consuming the first
// injected argument.
func Bind[T any](fn func(ctx context.Context, v T) error) Handler {
	return func(ctx context.Context, args []any) error {
		v, err := argAt[T](args, 0)
		if err != nil {
			return err
		}

		return fn(ctx, v)
	}
}

// Bind2 adapts a command body taking two injected arguments, in
// composition order.
func Bind2[A, B any](fn func(ctx context.Context, a A, b B) error) Handler {
	return func(ctx context.Context, args []any) error {
		a, err := argAt[A](args, 0)
		if err != nil {
			return err
		}

		b, err := argAt[B](args, 1)
		if err != nil {
			return err
		}

		return fn(ctx, a, b)
	}
}

// argAt extracts the injected argument at position i.
func argAt[T any](args []any, i int) (T, error) {
	var zero T

	if i >= len(args) {
		return zero, fmt.Errorf("handler expected injected argument %d of type %s, but only %d were injected",
			i, typeName[T](), len(args))
	}

	v, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("handler argument %d: expected %s, got %T", i, typeName[T](), args[i])
	}

	return v, nil
}

func prepend(v any, args []any) []any {
	out := make([]any, 0, len(args)+1)
	out = append(out, v)

	return append(out, args...)
}
