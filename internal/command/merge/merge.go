package merge

import (
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct {
	message string
}

func (c *Command) Name() string      { return "merge" }
func (c *Command) Short() string     { return "m" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "merge [-m <message>] <branch>" }
func (c *Command) Brief() string     { return "Merge a branch into HEAD" }
func (c *Command) Help() string {
	return `Merge another branch into the current HEAD.

Files changed on the branch since the common ancestor are taken from the
branch, the version nearest its tip winning. No conflict markers are
written: on paths changed on both sides the branch's version wins.
The result is a commit with two parents, HEAD first.

Options:
  -m <message>   Commit message (default "Merge branch '<branch>'").`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.StringVar(&c.message, "m", "", "merge commit message")
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return fmt.Errorf("usage: wit %s", c.Usage())
	}
	branch := ctx.Args[0]

	r, err := repo.Open()
	if err != nil {
		return err
	}

	fmt.Printf("Merging branch '%s' into '%s'...\n", branch, r.ActiveBranch())
	res, err := r.Merge(branch, c.message)
	if err != nil {
		return err
	}

	for _, f := range res.Files {
		fmt.Printf("\t%s\n", f)
	}
	base := res.Base
	if base == "" {
		base = "none"
	}
	fmt.Printf("Merge commit %s (common ancestor %s, %d file(s) taken)\n", res.Commit.ID, base, len(res.Files))
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
