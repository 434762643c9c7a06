package help

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "help" }
func (c *Command) Short() string     { return "H" }
func (c *Command) Aliases() []string { return []string{"h", "?"} }
func (c *Command) Usage() string     { return "help [command]" }
func (c *Command) Brief() string     { return "Show help for commands" }
func (c *Command) Help() string {
	return `Display help information for commands.

Usage:
  help          List all commands.
  help <name>   Show detailed help for a specific command.`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) > 0 {
		return CommandHelp(os.Stdout, strings.ToLower(ctx.Args[0]))
	}
	return ListCommands(os.Stdout)
}

// CommandHelp writes the usage, help text and aliases of one command.
func CommandHelp(w io.Writer, name string) error {
	cmd, ok := command.GetCommand(name)
	if !ok {
		return fmt.Errorf("%w: %s", command.ErrUnknownCommand, name)
	}

	if usage := cmd.Usage(); usage != "" {
		fmt.Fprintf(w, "Usage: wit %s\n\n", usage)
	}
	fmt.Fprintf(w, "%s\n\n", cmd.Help())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(w, "Aliases: %s\n", strings.Join(aliases, ", "))
	}
	return nil
}

// ListCommands writes every registered command with its brief description.
func ListCommands(w io.Writer) error {
	commands := command.AllCommands()

	longest := 0
	for _, cmd := range commands {
		if l := len(cmd.Name()); l > longest {
			longest = l
		}
	}

	fmt.Fprint(w, "Available commands:\n\n")
	for _, cmd := range commands {
		desc := cmd.Brief()
		if desc == "" {
			desc = "-"
		}
		padding := strings.Repeat(" ", longest-len(cmd.Name())+2)
		fmt.Fprintf(w, "  %s%s%s\n", cmd.Name(), padding, desc)
	}
	fmt.Fprintln(w, "\nType 'wit help <command>' to see detailed information about a specific command.")
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
