package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EnsureObjectSharedAcrossGroupAndSubcommand(t *testing.T) {
	var title string

	group := &Command{
		Name: "cli",
		Use:  []Middleware{PassObject[fooState](true)},
		Run: Bind(func(_ context.Context, foo *fooState) error {
			if foo.Title == "" {
				foo.Title = "default"
			}

			return nil
		}),
		Commands: []*Command{{
			Name: "test",
			Use:  []Middleware{PassObject[fooState](true)},
			Run: Bind(func(_ context.Context, foo *fooState) error {
				title = foo.Title

				return nil
			}),
		}},
	}

	status, err := Run(context.Background(), group, []string{"test"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "default", title)
}

func TestRun_SubcommandFindsObjectSetByGroup(t *testing.T) {
	var title string

	group := &Command{
		Name: "cli",
		Use:  []Middleware{PassContext()},
		Run: Bind(func(_ context.Context, c *Context) error {
			c.SetObj(&fooState{Title: "test"})

			return nil
		}),
		Commands: []*Command{{
			Name: "test",
			Use:  []Middleware{PassObject[fooState](false)},
			Run: Bind(func(_ context.Context, foo *fooState) error {
				title = foo.Title

				return nil
			}),
		}},
	}

	status, err := Run(context.Background(), group, []string{"test"})
	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, "test", title)
}

func TestRun_MissingObjectAbortsSubcommand(t *testing.T) {
	group := &Command{
		Name: "cli",
		Commands: []*Command{{
			Name: "test",
			Use:  []Middleware{PassObject[fooState](false)},
			Run:  Bind(func(context.Context, *fooState) error { return nil }),
		}},
	}

	_, err := Run(context.Background(), group, []string{"test"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingObject)
	assert.Contains(t, err.Error(), "fooState")
}

func TestRun_ExplicitExitIsNotAFault(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{name: "failure code", code: 1},
		{name: "success code", code: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &Command{
				Name: "cli",
				Use:  []Middleware{PassContext()},
				Run: Bind(func(_ context.Context, c *Context) error {
					return c.Exit(tt.code)
				}),
			}

			status, err := Run(context.Background(), cmd, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.code, status)
		})
	}
}

func TestRun_FaultIsReturnedAfterCleanup(t *testing.T) {
	fault := errors.New("command failed")

	var cleaned bool

	cmd := &Command{
		Name: "cli",
		Use:  []Middleware{PassContext()},
		Run: Bind(func(_ context.Context, c *Context) error {
			c.CallOnClose(func() { cleaned = true })

			return fault
		}),
	}

	status, err := Run(context.Background(), cmd, nil)
	assert.ErrorIs(t, err, fault)
	assert.Equal(t, 1, status)
	assert.True(t, cleaned)
}

func TestRun_UnknownSubcommandIsUsageError(t *testing.T) {
	group := &Command{
		Name:     "cli",
		Commands: []*Command{{Name: "known"}},
	}

	_, err := Run(context.Background(), group, []string{"bogus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "bogus")
}

func TestRun_MissingSubcommandIsUsageError(t *testing.T) {
	group := &Command{
		Name:     "cli",
		Commands: []*Command{{Name: "known"}},
	}

	_, err := Run(context.Background(), group, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRun_GroupBodyRunsBeforeSubcommand(t *testing.T) {
	var order []string

	group := &Command{
		Name: "cli",
		Run: func(context.Context, []any) error {
			order = append(order, "group")

			return nil
		},
		Commands: []*Command{{
			Name: "sub",
			Run: func(context.Context, []any) error {
				order = append(order, "sub")

				return nil
			},
		}},
	}

	_, err := Run(context.Background(), group, []string{"sub"})
	require.NoError(t, err)
	assert.Equal(t, []string{"group", "sub"}, order)
}

func TestRun_SubcommandContextIsChildOfGroupContext(t *testing.T) {
	var parentName string

	group := &Command{
		Name: "cli",
		Commands: []*Command{{
			Name: "sub",
			Use:  []Middleware{PassContext()},
			Run: Bind(func(_ context.Context, c *Context) error {
				require.NotNil(t, c.Parent())
				parentName = c.Parent().Command.Name

				return nil
			}),
		}},
	}

	_, err := Run(context.Background(), group, []string{"sub"})
	require.NoError(t, err)
	assert.Equal(t, "cli", parentName)
}

func TestRun_LeafKeepsUnconsumedArguments(t *testing.T) {
	var got []string

	group := &Command{
		Name: "cli",
		Commands: []*Command{{
			Name: "sub",
			Use:  []Middleware{PassContext()},
			Run: Bind(func(_ context.Context, c *Context) error {
				got = c.Args

				return nil
			}),
		}},
	}

	_, err := Run(context.Background(), group, []string{"sub", "--flag", "value"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--flag", "value"}, got)
}

func TestRun_ExitFromGroupSkipsSubcommand(t *testing.T) {
	var subRan bool

	group := &Command{
		Name: "cli",
		Use:  []Middleware{PassContext()},
		Run: Bind(func(_ context.Context, c *Context) error {
			return c.Exit(4)
		}),
		Commands: []*Command{{
			Name: "sub",
			Run: func(context.Context, []any) error {
				subRan = true

				return nil
			},
		}},
	}

	status, err := Run(context.Background(), group, []string{"sub"})
	require.NoError(t, err)
	assert.Equal(t, 4, status)
	assert.False(t, subRan)
}

func TestRun_MetaFlowsFromGroupToSubcommand(t *testing.T) {
	var lang string

	group := &Command{
		Name: "cli",
		Use:  []Middleware{PassContext()},
		Run: Bind(func(_ context.Context, c *Context) error {
			c.Meta()["lang"] = "de_DE"

			return nil
		}),
		Commands: []*Command{{
			Name: "sub",
			Use:  []Middleware{PassContext()},
			Run: Bind(func(_ context.Context, c *Context) error {
				lang, _ = c.Meta()["lang"].(string)

				return nil
			}),
		}},
	}

	_, err := Run(context.Background(), group, []string{"sub"})
	require.NoError(t, err)
	assert.Equal(t, "de_DE", lang)
}

func TestRun_CleanupOrderAcrossNestedContexts(t *testing.T) {
	var order []string

	group := &Command{
		Name: "cli",
		Use:  []Middleware{PassContext()},
		Run: Bind(func(_ context.Context, c *Context) error {
			c.CallOnClose(func() { order = append(order, "group") })

			return nil
		}),
		Commands: []*Command{{
			Name: "sub",
			Use:  []Middleware{PassContext()},
			Run: Bind(func(_ context.Context, c *Context) error {
				c.CallOnClose(func() { order = append(order, "sub") })

				return nil
			}),
		}},
	}

	_, err := Run(context.Background(), group, []string{"sub"})
	require.NoError(t, err)

	// Inner scopes unwind before outer ones.
	assert.Equal(t, []string{"sub", "group"}, order)
}
