package command

var tree = NewTree()

// RegisterCommand adds a command to the global tree. Command packages call
// it from init.
func RegisterCommand(cmd Command) {
	tree.Register(cmd)
}

func ResolveCommand(args []string) (*Node, []string, error) {
	return tree.Resolve(args)
}

// GetCommand returns a registered command by name or alias.
func GetCommand(name string) (Command, bool) {
	return tree.Get(name)
}

// AllCommands returns the registered commands sorted by name.
func AllCommands() []Command {
	return tree.All()
}
