package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/Ninpo/trio-click/internal/platform/logging"
)

// Standalone process statuses for outcomes that carry no explicit code.
const (
	statusFault = 1
	statusUsage = 2
)

// Run executes root with the given argument tokens in non-standalone mode.
//
// The returned status is the invocation's explicit exit code: zero when
// the command simply returned, and whatever Context.Exit recorded
// otherwise. Neither is an error. Faults (including usage errors) are
// returned as a non-nil error with status 1; the caller decides whether to
// re-raise or convert them.
func Run(ctx context.Context, root *Command, args []string) (int, error) {
	err := runCommand(ctx, root, args, nil)
	if err == nil {
		return 0, nil
	}

	if code, ok := ExitCode(err); ok {
		return code, nil
	}

	return statusFault, err
}

// Main executes root in standalone mode, converting the outcome into a
// process exit status: explicit exits keep their code, usage errors map to
// 2, and any other fault is logged and maps to 1. SIGINT and SIGTERM
// cancel the invocation's context.
func Main(root *Command, args []string) int {
	return MainContext(context.Background(), root, args)
}

// MainContext is Main with a caller-supplied base context.
func MainContext(ctx context.Context, root *Command, args []string) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Every top-level invocation gets its own ID so concurrent runs are
	// distinguishable in shared log sinks.
	ctx = logging.WithInvocationID(ctx, uuid.NewString())
	ctx = logging.WithCommand(ctx, root.Name)

	status, err := Run(ctx, root, args)
	if err != nil {
		if errors.Is(err, ErrUsage) {
			logging.FromContext(ctx).ErrorContext(ctx, "usage error", slog.Any("error", err))

			return statusUsage
		}

		logging.FromContext(ctx).ErrorContext(ctx, "command failed", slog.Any("error", err))

		return statusFault
	}

	return status
}

// runCommand creates the invocation's context, enters its scope, runs the
// body and dispatches the selected subcommand inside that scope so child
// contexts chain to their parents.
func runCommand(ctx context.Context, cmd *Command, args []string, parent *Context) error {
	opts := make([]ContextOption, 0, 2)
	if parent != nil {
		opts = append(opts, WithParent(parent))
	}

	if len(cmd.Commands) == 0 {
		// Leaf commands keep their unconsumed tokens for the option
		// parser layer.
		opts = append(opts, WithArgs(args))
	}

	c := NewContext(cmd, opts...)

	return c.Scope(ctx, func(scopeCtx context.Context) error {
		if h := cmd.handler(); h != nil {
			if err := h(scopeCtx, nil); err != nil {
				return err
			}
		}

		if len(cmd.Commands) == 0 {
			return nil
		}

		if len(args) == 0 {
			return &UsageError{Command: cmd.Name, Message: "missing subcommand"}
		}

		sub, ok := cmd.Lookup(args[0])
		if !ok {
			return &UsageError{Command: cmd.Name, Message: fmt.Sprintf("unknown subcommand %q", args[0])}
		}

		return runCommand(scopeCtx, sub, args[1:], c)
	})
}
