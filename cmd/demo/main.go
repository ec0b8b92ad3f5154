// Package main is a small demonstration CLI built on the execution-context
// engine.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Ninpo/trio-click/internal/cli"
	"github.com/Ninpo/trio-click/internal/platform/config"
	"github.com/Ninpo/trio-click/internal/platform/logging"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)

		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid config: %v\n", err)

		return 1
	}

	// 3. Initialize logging
	logger := logging.NewWithFile(
		logging.Config{
			Level:   cfg.Log.Level,
			Format:  cfg.Log.Format,
			App:     cfg.App.Name,
			Version: cfg.App.Version,
		},
		logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
		os.Stderr,
	)
	logging.SetDefault(logger)

	logger.Info("starting",
		slog.String("build_version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Run the command tree standalone
	ctx := logging.WithContext(context.Background(), logger)

	return cli.MainContext(ctx, newRootCommand(cfg), os.Args[1:])
}

// appState is the demo's shared typed context object. The root command
// ensures it; subcommands look it up through the context chain.
type appState struct {
	Greeting string
	Visits   int
}

func newRootCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Short: "demonstrates scoped contexts, state objects and cleanup",
		Use:   []cli.Middleware{cli.PassContext()},
		Run: cli.Bind(func(ctx context.Context, c *cli.Context) error {
			c.Meta()["demo.locale"] = cfg.Runtime.Locale

			state := cli.EnsureObject[appState](c)
			if state.Greeting == "" {
				state.Greeting = "hello"
			}

			return nil
		}),
		Commands: []*cli.Command{
			newGreetCommand(),
			newScopedCommand(),
			newQuitCommand(),
		},
	}
}

// newGreetCommand prints the configured greeting. It shows both context
// and typed-object injection: composition order fixes argument order.
func newGreetCommand() *cli.Command {
	return &cli.Command{
		Name:  "greet",
		Short: "print a greeting using the shared state object",
		Use: []cli.Middleware{
			cli.PassContext(),
			cli.PassObject[appState](false),
		},
		Run: cli.Bind2(func(ctx context.Context, state *appState, c *cli.Context) error {
			state.Visits++

			locale, _ := c.Meta()["demo.locale"].(string)
			logging.FromContext(ctx).InfoContext(ctx, "greeting",
				slog.String("locale", locale),
				slog.Int("visits", state.Visits),
			)

			name := "world"
			if len(c.Args) > 0 {
				name = c.Args[0]
			}

			fmt.Printf("%s, %s\n", state.Greeting, name)

			return nil
		}),
	}
}

// newScopedCommand acquires a scratch directory as a scoped resource and
// registers a close callback; both are released when the invocation's
// scope unwinds.
func newScopedCommand() *cli.Command {
	return &cli.Command{
		Name:  "scratch",
		Short: "work inside a scratch directory that is cleaned up on exit",
		Use:   []cli.Middleware{cli.PassContext()},
		Run: cli.Bind(func(ctx context.Context, c *cli.Context) error {
			dir, err := c.EnterContext(cli.ResourceFunc{
				AcquireFn: func() (any, error) {
					return os.MkdirTemp("", "demo-scratch-")
				},
			})
			if err != nil {
				return fmt.Errorf("creating scratch dir: %w", err)
			}

			path := dir.(string)
			c.CallOnClose(func() {
				if rmErr := os.RemoveAll(path); rmErr != nil {
					logging.FromContext(ctx).WarnContext(ctx, "scratch cleanup failed",
						slog.Any("error", rmErr),
					)
				}
			})

			logging.FromContext(ctx).InfoContext(ctx, "scratch dir ready", slog.String("path", path))
			fmt.Println(path)

			return nil
		}),
	}
}

// newQuitCommand requests an explicit early exit with a caller-visible
// status, distinct from a fault.
func newQuitCommand() *cli.Command {
	return &cli.Command{
		Name:  "quit",
		Short: "exit early with status 3",
		Use:   []cli.Middleware{cli.PassContext()},
		Run: cli.Bind(func(ctx context.Context, c *cli.Context) error {
			return c.Exit(3)
		}),
	}
}
