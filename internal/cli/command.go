package cli

// Command describes an invocable command. The engine treats it as an
// opaque descriptor: option grammar, coercion and help output belong to
// the surrounding parser layer.
type Command struct {
	// Name is the token that selects this command during dispatch.
	Name string

	// Short is a one-line description used in logs and error messages.
	Short string

	// Run is the command body. Group commands may leave it nil; when a
	// group has a body it runs before its subcommand is dispatched.
	Run Handler

	// Use is the middleware chain applied around Run at invocation time,
	// outermost first.
	Use []Middleware

	// Commands are the subcommands reachable from this command. The first
	// remaining argument token selects one; its invocation runs in a child
	// context of this command's context.
	Commands []*Command
}

// Lookup returns the subcommand selected by name.
func (cmd *Command) Lookup(name string) (*Command, bool) {
	for _, sub := range cmd.Commands {
		if sub.Name == name {
			return sub, true
		}
	}

	return nil, false
}

// handler returns Run wrapped in the command's middleware chain, or nil
// for body-less groups.
func (cmd *Command) handler() Handler {
	if cmd.Run == nil {
		return nil
	}

	return Chain(cmd.Use...)(cmd.Run)
}
