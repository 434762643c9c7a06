package verify

import (
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "verify" }
func (c *Command) Short() string     { return "V" }
func (c *Command) Aliases() []string { return []string{"fsck"} }
func (c *Command) Usage() string     { return "verify" }
func (c *Command) Brief() string     { return "Check references and commits for damage" }
func (c *Command) Help() string {
	return `Check that HEAD and every branch point at stored commits, and that
every reachable commit has its snapshot and parents.`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	r, err := repo.Open()
	if err != nil {
		return err
	}

	fmt.Println("Checking repository integrity...")
	if err := r.Verify(); err != nil {
		return err
	}
	fmt.Println("OK")
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
