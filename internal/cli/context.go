package cli

import (
	"context"
	"log/slog"

	"github.com/Ninpo/trio-click/internal/platform/logging"
)

// Context is a node in the command invocation hierarchy. It owns the
// resources acquired while its scope is active, carries the invocation's
// state object and metadata, and links back to the context of the
// enclosing command for lookups.
//
// A Context and its resource stack belong to the invocation that created
// them; sharing one across concurrent execution units is out of contract.
type Context struct {
	// Command is the descriptor of the command being executed. It is owned
	// by the caller; the context only observes it.
	Command *Command

	// Args are the argument tokens left over after subcommand dispatch,
	// for the external parser to consume.
	Args []string

	parent *Context
	obj    any

	// meta is shared by reference down the chain: a child adopts its
	// parent's map, so entries set anywhere during an invocation are
	// visible chain-wide. Roots allocate a fresh map.
	meta map[string]any

	stack *ExitStack

	// depth counts active scope entries for this specific instance.
	// Cleanup runs only when it returns to zero.
	depth int

	exitCode int
	exited   bool
}

// ContextOption configures a new Context.
type ContextOption func(*Context)

// WithParent links the new context under parent. The child adopts the
// parent's meta map by reference.
func WithParent(parent *Context) ContextOption {
	return func(c *Context) {
		c.parent = parent
		if parent != nil {
			c.meta = parent.meta
		}
	}
}

// WithObj sets the initial state object.
func WithObj(obj any) ContextOption {
	return func(c *Context) {
		c.obj = obj
	}
}

// WithArgs sets the leftover argument tokens.
func WithArgs(args []string) ContextOption {
	return func(c *Context) {
		c.Args = args
	}
}

// NewContext creates a context for an invocation of cmd. The context is
// inert until a scope is entered.
func NewContext(cmd *Command, opts ...ContextOption) *Context {
	c := &Context{
		Command: cmd,
		stack:   NewExitStack(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.meta == nil {
		c.meta = make(map[string]any)
	}

	return c
}

// Parent returns the enclosing context, or nil for a root.
func (c *Context) Parent() *Context {
	return c.parent
}

// Obj returns the context's own state object. It does not consult
// ancestors; use FindObject for chain lookups.
func (c *Context) Obj() any {
	return c.obj
}

// SetObj replaces the context's state object.
func (c *Context) SetObj(obj any) {
	c.obj = obj
}

// Meta returns the metadata map shared across the invocation's chain.
// Mutation from concurrent invocations must be serialized by the caller.
func (c *Context) Meta() map[string]any {
	return c.meta
}

// Depth reports how many scope entries are currently active for this
// context.
func (c *Context) Depth() int {
	return c.depth
}

// ExitCode returns the explicitly requested exit code, if any.
func (c *Context) ExitCode() (int, bool) {
	return c.exitCode, c.exited
}

// CallOnClose registers fn to run when the context's resources are
// released. Callbacks run in reverse registration order while the context
// is still current. The function is returned unchanged so registration can
// wrap a declaration.
func (c *Context) CallOnClose(fn func()) func() {
	c.stack.Callback(fn)

	return fn
}

// EnterContext acquires r on the context's resource stack and returns the
// acquired value. Release is deferred to scope exit.
func (c *Context) EnterContext(r Resource) (any, error) {
	return c.stack.Enter(r)
}

// EnterAsyncContext is the suspension-capable counterpart of EnterContext.
func (c *Context) EnterAsyncContext(ctx context.Context, r AsyncResource) (any, error) {
	return c.stack.EnterAsync(ctx, r)
}

// Exit records code and returns the ExitError that unwinds the current
// invocation. Command bodies return it directly:
//
//	return c.Exit(1)
//
// The unwind runs every enclosing scope's cleanup but is not reported as
// an application fault.
func (c *Context) Exit(code int) error {
	c.exitCode = code
	c.exited = true

	return &ExitError{Code: code}
}

// Scope enters the context, runs fn with a derived context.Context in
// which this context is current, and exits again. When the exit brings the
// active depth back to zero the resource stack is closed: close callbacks
// observe the context as still current. The context cannot be entered
// again after its resources are released.
func (c *Context) Scope(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.scope(ctx, true, fn)
}

// ScopeNoCleanup enters the context like Scope but leaves resources open
// on exit, keeping the context re-enterable across independent entry
// points. The caller owes a later cleanup-enabled exit (or Close).
func (c *Context) ScopeNoCleanup(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.scope(ctx, false, fn)
}

// Close releases the context's resources outside of a scoped exit. It is
// the cleanup-enabled counterpart for contexts held open with
// ScopeNoCleanup.
func (c *Context) Close(ctx context.Context) error {
	return c.stack.Close(WithCurrent(ctx, c))
}

func (c *Context) scope(ctx context.Context, cleanup bool, fn func(ctx context.Context) error) (err error) {
	c.depth++
	scopeCtx := WithCurrent(ctx, c)

	defer func() {
		c.depth--
		if c.depth > 0 || !cleanup {
			return
		}

		closeErr := c.stack.Close(scopeCtx)
		if closeErr == nil {
			return
		}

		if err == nil {
			err = closeErr

			return
		}

		logging.FromContext(scopeCtx).WarnContext(scopeCtx, "cleanup failed during unwind",
			slog.Any("error", closeErr),
		)
	}()

	return fn(scopeCtx)
}
