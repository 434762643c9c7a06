package status

import (
	"flag"
	"fmt"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "status" }
func (c *Command) Short() string     { return "s" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status" }
func (c *Command) Brief() string     { return "Show the working tree status" }
func (c *Command) Help() string {
	return `Show the checked out commit, the active branch and pending changes.

Sections:
  Changes to be committed      - staging area differs from HEAD
  Changes not staged for commit - working tree differs from staging area
  Untracked files              - working tree files never staged`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	r, err := repo.Open()
	if err != nil {
		return err
	}

	st, err := r.Status()
	if err != nil {
		return err
	}

	if st.Detached {
		fmt.Printf("HEAD detached at %s (active branch %s)\n", headOrNone(st.Head), st.Branch)
	} else {
		fmt.Printf("On branch %s\n", st.Branch)
		fmt.Printf("HEAD: %s\n", headOrNone(st.Head))
	}
	fmt.Println()

	printSection("Changes to be committed:", "(use \"wit commit\" to record them)", st.Staged)
	printSection("Changes not staged for commit:", "(use \"wit add <file>...\" to update what will be committed)", st.Unstaged)
	printSection("Untracked files:", "(use \"wit add <file>...\" to include in what will be committed)", st.Untracked)

	if st.State == repo.Clean && len(st.Untracked) == 0 {
		fmt.Println("nothing to commit, working tree clean")
	}
	return nil
}

func printSection(title, hint string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Println(title)
	fmt.Printf("  %s\n", hint)
	for _, p := range paths {
		fmt.Printf("\t%s\n", p)
	}
	fmt.Println()
}

func headOrNone(id string) string {
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
