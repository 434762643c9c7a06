package log

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct {
	limit   int
	oneline bool
}

func (c *Command) Name() string      { return "log" }
func (c *Command) Short() string     { return "l" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "log [-n <count>] [--oneline]" }
func (c *Command) Brief() string     { return "Show commits reachable from HEAD" }
func (c *Command) Help() string {
	return `Show commits reachable from HEAD, nearest first (breadth-first over
all parents, so both sides of a merge are listed).

Options:
  -n <count>   Show at most <count> commits.
  --oneline    One line per commit: id and message.`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.IntVar(&c.limit, "n", 0, "limit the number of commits")
	fs.BoolVar(&c.oneline, "oneline", false, "one line per commit")
}

func (c *Command) Run(ctx *command.Context) error {
	r, err := repo.Open()
	if err != nil {
		return err
	}

	commits, err := r.Log(c.limit)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		fmt.Println("No commits found")
		return nil
	}

	label := func(s string) string { return s }
	if term.IsTerminal(int(os.Stdout.Fd())) {
		label = func(s string) string { return "\033[90m" + s + "\033[0m" }
	}

	for _, cmt := range commits {
		if c.oneline {
			fmt.Printf("%s %s\n", cmt.ID, cmt.Message)
			continue
		}
		fmt.Printf("%s %s\n", label("Commit:"), cmt.ID)
		switch {
		case cmt.IsMerge():
			fmt.Printf("%s  %s\n", label("Merge:"), strings.Join(cmt.ParentIDs, " "))
		case len(cmt.ParentIDs) == 1:
			fmt.Printf("%s %s\n", label("Parent:"), cmt.ParentIDs[0])
		}
		fmt.Printf("%s   %s\n\n", label("Date:"), cmt.Date())
		fmt.Printf("    %s\n\n", cmt.Message)
	}
	fmt.Printf("Total commits: %d\n", len(commits))
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
