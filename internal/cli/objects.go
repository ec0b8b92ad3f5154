package cli

import (
	"fmt"
	"strings"
)

// FindObject walks from c up through its ancestors and returns the first
// state object assignable to T. It never creates anything and never
// attaches state to an ancestor; absence is reported, not an error.
func FindObject[T any](c *Context) (T, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if obj, ok := cur.obj.(T); ok {
			return obj, true
		}
	}

	var zero T

	return zero, false
}

// EnsureObject returns the nearest *T state object in the chain. When none
// exists a zero value is constructed and attached to c, never to an
// ancestor. After the first creation, repeated calls on the same
// context return the identical instance.
func EnsureObject[T any](c *Context) *T {
	if obj, ok := FindObject[*T](c); ok {
		return obj
	}

	obj := new(T)
	c.obj = obj

	return obj
}

// typeName names T in configuration error messages without reflection.
func typeName[T any]() string {
	return strings.TrimPrefix(fmt.Sprintf("%T", (*T)(nil)), "*")
}
