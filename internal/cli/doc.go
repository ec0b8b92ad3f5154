// Package cli implements the execution-context engine for command-line
// applications: a hierarchy of scoped contexts threaded through a tree of
// commands and subcommands.
//
// # Contexts and scopes
//
// Every command invocation runs inside a [Context], created as a child of
// the invoking command's context (or as a root). Entering a context's
// scope makes it the current context for the calling execution unit and
// activates its resource stack:
//
//	c := cli.NewContext(cmd)
//	err := c.Scope(ctx, func(ctx context.Context) error {
//	    c.CallOnClose(func() { /* runs at scope exit */ })
//	    return nil
//	})
//
// Scopes are re-entrant: a context may be entered again while already
// active, and cleanup only runs when the outermost entry exits. Use
// [Context.ScopeNoCleanup] to hold a context open across independent entry
// points; the caller then owes a later cleanup-enabled exit.
//
// # Resources
//
// Acquired resources and close callbacks live on the context's
// [ExitStack] and are released in reverse registration order on every exit
// path: normal return, fault, or explicit exit. Both blocking ([Resource])
// and suspension-capable ([AsyncResource]) acquisitions share one unified
// release path.
//
// # The current context
//
// The innermost active context travels with the standard context.Context,
// one chain per execution unit, so concurrent invocations never observe
// each other's contexts. Retrieve it with [Current] (fatal when absent) or
// [CurrentOK] (silent).
//
// # Typed state objects
//
// A context carries one arbitrary state object. [FindObject] walks the
// ancestor chain for a matching type without creating anything;
// [EnsureObject] lazily constructs one on the invoking context. The
// [PassObject], [PassContext] and [PassObj] middleware inject resolved
// values into command bodies; composition order, not argument names,
// determines argument order.
//
// Argument parsing, help output and terminal echoing are owned by the
// caller: the engine only sees opaque [Command] descriptors and argument
// tokens for subcommand dispatch.
package cli
