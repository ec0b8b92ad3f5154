package cli

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Invocation pairs a command tree with its argument tokens for concurrent
// execution.
type Invocation struct {
	Command *Command
	Args    []string
}

// RunAll executes invocations concurrently, each as an independent
// execution unit with its own context chain and current-context slot. It
// returns the exit status of every invocation in input order; the first
// fault cancels the remaining invocations.
func RunAll(ctx context.Context, invocations ...Invocation) ([]int, error) {
	g, ctx := errgroup.WithContext(ctx)
	statuses := make([]int, len(invocations))

	for i, inv := range invocations {
		g.Go(func() error {
			status, err := Run(ctx, inv.Command, inv.Args)
			if err != nil {
				return err
			}

			statuses[i] = status

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, fmt.Errorf("parallel invocation failed: %w", err)
	}

	return statuses, nil
}

// RunAllLimit executes invocations with bounded concurrency: at most limit
// invocations run simultaneously.
func RunAllLimit(ctx context.Context, limit int, invocations ...Invocation) ([]int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	statuses := make([]int, len(invocations))

	for i, inv := range invocations {
		g.Go(func() error {
			status, err := Run(ctx, inv.Command, inv.Args)
			if err != nil {
				return err
			}

			statuses[i] = status

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, fmt.Errorf("parallel invocation failed: %w", err)
	}

	return statuses, nil
}
