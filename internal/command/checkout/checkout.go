package checkout

import (
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "checkout" }
func (c *Command) Short() string     { return "o" }
func (c *Command) Aliases() []string { return []string{"co"} }
func (c *Command) Usage() string     { return "checkout <master|commit-id|branch>" }
func (c *Command) Brief() string     { return "Restore a commit or branch into the working tree" }
func (c *Command) Help() string {
	return `Restore a commit into the working tree and move HEAD to it.

The target is resolved as "master", then as a commit id, then as a branch
name. Checking out a branch makes it active; checking out a commit id keeps
the active branch and detaches HEAD.

Files absent from the target commit are left in place. The working tree
must be clean: commit or revert staged and unstaged changes first.`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: wit %s", c.Usage())
	}

	r, err := repo.Open()
	if err != nil {
		return err
	}

	target, err := r.Checkout(ctx.Args[0])
	if err != nil {
		return err
	}

	if target.CommitID == "" {
		fmt.Println("Branch is empty, switched to", target.Branch)
		return nil
	}
	if r.IsDetached() {
		fmt.Printf("HEAD is now at %s (detached, active branch %s)\n", target.CommitID, target.Branch)
		return nil
	}
	fmt.Printf("Switched to branch %s at %s\n", target.Branch, target.CommitID)
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithRepoIntegrityCheck(),
		),
	)
}
