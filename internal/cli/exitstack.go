package cli

import (
	"context"
	"log/slog"

	"github.com/Ninpo/trio-click/internal/platform/logging"
)

// Resource is the scoped-resource contract for blocking acquisition:
// Acquire obtains the value, Release undoes the acquisition when the
// owning stack unwinds.
type Resource interface {
	Acquire() (any, error)
	Release() error
}

// AsyncResource is the suspension-capable variant: acquisition and release
// may each block on the provided context instead of completing immediately.
type AsyncResource interface {
	Acquire(ctx context.Context) (any, error)
	Release(ctx context.Context) error
}

// ResourceFunc adapts a pair of closures into a Resource.
type ResourceFunc struct {
	AcquireFn func() (any, error)
	ReleaseFn func() error
}

// Acquire implements Resource.
func (r ResourceFunc) Acquire() (any, error) {
	if r.AcquireFn == nil {
		return nil, nil
	}

	return r.AcquireFn()
}

// Release implements Resource.
func (r ResourceFunc) Release() error {
	if r.ReleaseFn == nil {
		return nil
	}

	return r.ReleaseFn()
}

// AsyncResourceFunc adapts a pair of context-aware closures into an
// AsyncResource.
type AsyncResourceFunc struct {
	AcquireFn func(ctx context.Context) (any, error)
	ReleaseFn func(ctx context.Context) error
}

// Acquire implements AsyncResource.
func (r AsyncResourceFunc) Acquire(ctx context.Context) (any, error) {
	if r.AcquireFn == nil {
		return nil, nil
	}

	return r.AcquireFn(ctx)
}

// Release implements AsyncResource.
func (r AsyncResourceFunc) Release(ctx context.Context) error {
	if r.ReleaseFn == nil {
		return nil
	}

	return r.ReleaseFn(ctx)
}

// releaseFunc is the unified release path shared by both acquisition modes
// and plain callbacks.
type releaseFunc func(ctx context.Context) error

// ExitStack owns the resources acquired and callbacks registered during
// one context's lifetime and releases them in reverse registration order.
//
// An ExitStack is owned by exactly one Context and is not safe for use
// from multiple goroutines.
type ExitStack struct {
	releases []releaseFunc
	closed   bool
}

// NewExitStack returns an empty stack.
func NewExitStack() *ExitStack {
	return &ExitStack{}
}

// Enter acquires r and defers its release until Close. A failed
// acquisition registers nothing; resources acquired earlier on the same
// stack are still released on unwind.
func (s *ExitStack) Enter(r Resource) (any, error) {
	value, err := r.Acquire()
	if err != nil {
		return nil, err
	}

	s.releases = append(s.releases, func(context.Context) error {
		return r.Release()
	})

	return value, nil
}

// EnterAsync acquires r through its context-aware entry point. The release
// joins the same unwind path as blocking resources and is awaited in turn
// before the next release runs.
func (s *ExitStack) EnterAsync(ctx context.Context, r AsyncResource) (any, error) {
	value, err := r.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	s.releases = append(s.releases, r.Release)

	return value, nil
}

// Callback defers fn until Close.
func (s *ExitStack) Callback(fn func()) {
	s.releases = append(s.releases, func(context.Context) error {
		fn()

		return nil
	})
}

// Pending reports how many releases the stack currently holds.
func (s *ExitStack) Pending() int {
	return len(s.releases)
}

// Close releases all owned resources and runs all callbacks in reverse
// registration order. Every release is attempted even when an earlier one
// fails: the first error encountered is returned, later ones are logged
// best-effort. Close is idempotent; a second call is a no-op.
func (s *ExitStack) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}

	s.closed = true

	var firstErr error

	for i := len(s.releases) - 1; i >= 0; i-- {
		err := s.releases[i](ctx)
		if err == nil {
			continue
		}

		if firstErr == nil {
			firstErr = err

			continue
		}

		logging.FromContext(ctx).WarnContext(ctx, "resource release failed during unwind",
			slog.Any("error", err),
		)
	}

	s.releases = nil

	return firstErr
}
