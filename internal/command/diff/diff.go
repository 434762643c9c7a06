package diff

import (
	"flag"
	"fmt"
	"strings"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct {
	cached bool
}

func (c *Command) Name() string      { return "diff" }
func (c *Command) Short() string     { return "d" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "diff [--cached]" }
func (c *Command) Brief() string     { return "Show changes as unified diffs" }
func (c *Command) Help() string {
	return `Show unified diffs of changes.

Usage:
  diff            - working tree against the staging area
  diff --cached   - staging area against HEAD`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.cached, "cached", false, "compare staging area with HEAD")
	fs.BoolVar(&c.cached, "staged", false, "alias for --cached")
}

func (c *Command) Run(ctx *command.Context) error {
	r, err := repo.Open()
	if err != nil {
		return err
	}

	diffs, err := r.Diff(c.cached)
	if err != nil {
		return err
	}

	for _, d := range diffs {
		if d.Text == "" {
			fmt.Printf("%s: (no textual changes)\n", d.Path)
			continue
		}
		fmt.Print(d.Text)
		if !strings.HasSuffix(d.Text, "\n") {
			fmt.Println()
		}
	}
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
