package cli

import "context"

// currentKey is an unexported type to prevent collisions with context keys
// from other packages.
type currentKey struct{}

// WithCurrent returns a context.Context in which c is the innermost active
// Context for the calling execution unit. Each scope entry layers a new
// value over the enclosing one, so unwinding a scope restores the previous
// entry naturally and independent goroutines never observe each other's
// contexts.
func WithCurrent(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, currentKey{}, c)
}

// Current returns the innermost active Context for the calling execution
// unit. It fails with ErrNoContext when no context is active; callers that
// can tolerate absence should use CurrentOK.
func Current(ctx context.Context) (*Context, error) {
	c, ok := CurrentOK(ctx)
	if !ok {
		return nil, ErrNoContext
	}

	return c, nil
}

// CurrentOK is the silent variant of Current: it reports absence instead
// of failing.
func CurrentOK(ctx context.Context) (*Context, bool) {
	if ctx == nil {
		return nil, false
	}

	c, ok := ctx.Value(currentKey{}).(*Context)

	return c, ok
}
