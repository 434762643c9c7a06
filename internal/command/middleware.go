package command

// Middleware decorates a command. ApplyMiddlewares wraps in order, so the
// last middleware runs first.
type Middleware func(Command) Command

// WrappedCommand keeps the identity of the inner command and replaces Run.
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) error
}

func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// Before returns a Middleware calling check ahead of the command. A
// non-nil error from check is returned and the command does not run.
func Before(check func(cmd Command, ctx *Context) error) Middleware {
	return func(cmd Command) Command {
		return &WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *Context) error {
				if err := check(cmd, ctx); err != nil {
					return err
				}
				return cmd.Run(ctx)
			},
		}
	}
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
