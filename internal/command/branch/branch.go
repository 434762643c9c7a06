package branch

import (
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "branch" }
func (c *Command) Short() string     { return "B" }
func (c *Command) Aliases() []string { return []string{"br"} }
func (c *Command) Usage() string     { return "branch [<branch-name>]" }
func (c *Command) Brief() string     { return "List all branches or create a new one" }
func (c *Command) Help() string {
	return `List all branches or create a new one.

Usage:
  branch        - list all branches (active one marked with '*')
  branch <name> - create a new branch at HEAD; the active branch is unchanged`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	// open the repository context
	r, err := repo.Open()
	if err != nil {
		return err
	}

	// case 1: create new branch
	if len(ctx.Args) > 0 {
		name := ctx.Args[0]
		b, err := r.CreateBranch(name)
		if err != nil {
			return fmt.Errorf("failed to create branch %q: %w", name, err)
		}
		fmt.Printf("Branch '%s' created at %s.\n", b.Name, idOrNone(b.Target))
		return nil
	}

	// case 2: list branches
	fmt.Println("Branches:")
	for _, b := range r.ListBranches() {
		prefix := "  "
		if b.Active {
			prefix = "* "
		}
		fmt.Printf("%s%s\t%s\n", prefix, b.Name, idOrNone(b.Target))
	}
	return nil
}

func idOrNone(id string) string {
	if id == "" {
		return "None"
	}
	return id
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
