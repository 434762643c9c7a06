package commit

import (
	"flag"
	"fmt"
	"strings"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct {
	message string
}

func (c *Command) Name() string  { return "commit" }
func (c *Command) Short() string { return "c" }
func (c *Command) Brief() string { return "Commit staged changes" }
func (c *Command) Usage() string { return `commit -m "<message>"` }
func (c *Command) Help() string {
	return `Create a new commit from the staging area.

Nothing is recorded when the staging area matches HEAD.

Usage:
  commit -m "<message>"   - commit with a given message
  commit "<message>"      - same, message passed directly`
}
func (c *Command) Aliases() []string              { return []string{"ci"} }
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.StringVar(&c.message, "m", "", "commit message")
	fs.StringVar(&c.message, "message", "", "commit message")
}

func (c *Command) Run(ctx *command.Context) error {
	message := c.message
	if message == "" {
		message = strings.Join(ctx.Args, " ")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message required (use -m or pass message directly)")
	}

	// open the repository context
	r, err := repo.Open()
	if err != nil {
		return err
	}

	cmt, created, err := r.Commit(message)
	if err != nil {
		return err
	}
	if !created {
		fmt.Println("Nothing to commit, staging area matches HEAD")
		return nil
	}

	fmt.Printf("[%s %s] %s\n", r.ActiveBranch(), cmt.ID, cmt.Message)
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
