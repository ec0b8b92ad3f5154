package cli

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exitingCommand(name string, code int) *Command {
	return &Command{
		Name: name,
		Use:  []Middleware{PassContext()},
		Run: Bind(func(_ context.Context, c *Context) error {
			return c.Exit(code)
		}),
	}
}

func TestRunAll_CollectsStatusesInInputOrder(t *testing.T) {
	statuses, err := RunAll(context.Background(),
		Invocation{Command: exitingCommand("a", 0)},
		Invocation{Command: exitingCommand("b", 3)},
		Invocation{Command: exitingCommand("c", 1)},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 1}, statuses)
}

func TestRunAll_FaultFailsTheBatch(t *testing.T) {
	fault := errors.New("broken")

	_, err := RunAll(context.Background(),
		Invocation{Command: exitingCommand("ok", 0)},
		Invocation{Command: &Command{
			Name: "bad",
			Run:  func(context.Context, []any) error { return fault },
		}},
	)
	assert.ErrorIs(t, err, fault)
}

func TestRunAll_InvocationsHaveIsolatedContextChains(t *testing.T) {
	// Both invocations hold their scopes open at the same time; each must
	// see only its own context as current.
	var mu sync.Mutex

	seen := map[string]string{}

	// Rendezvous: both bodies must be inside their scopes at once.
	var ready sync.WaitGroup

	ready.Add(2)

	makeCommand := func(name string) *Command {
		return &Command{
			Name: name,
			Use:  []Middleware{PassContext()},
			Run: Bind(func(ctx context.Context, c *Context) error {
				ready.Done()
				ready.Wait()

				current, ok := CurrentOK(ctx)
				require.True(t, ok)

				mu.Lock()
				seen[name] = current.Command.Name
				mu.Unlock()

				return nil
			}),
		}
	}

	_, err := RunAll(context.Background(),
		Invocation{Command: makeCommand("left")},
		Invocation{Command: makeCommand("right")},
	)
	require.NoError(t, err)

	assert.Equal(t, "left", seen["left"])
	assert.Equal(t, "right", seen["right"])
}

func TestRunAllLimit_BoundsConcurrency(t *testing.T) {
	const limit = 2

	var mu sync.Mutex

	active, peak := 0, 0

	cmd := func(name string) *Command {
		return &Command{
			Name: name,
			Run: func(context.Context, []any) error {
				mu.Lock()
				active++
				if active > peak {
					peak = active
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()

				return nil
			},
		}
	}

	invocations := make([]Invocation, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		invocations = append(invocations, Invocation{Command: cmd(name)})
	}

	statuses, err := RunAllLimit(context.Background(), limit, invocations...)
	require.NoError(t, err)
	assert.Len(t, statuses, 8)
	assert.LessOrEqual(t, peak, limit)
}
