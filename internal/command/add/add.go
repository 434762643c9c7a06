package add

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "add" }
func (c *Command) Short() string     { return "a" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "add <file|dir|.>..." }
func (c *Command) Brief() string     { return "Stage files or directories for the next commit" }
func (c *Command) Help() string {
	return `Stage changes for commit.

Usage:
  add .          - stage every file that is not ignored
  add <path>...  - stage specific files or directories

Paths listed in .witignore are skipped when staging directories.`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	args := ctx.Args
	// if no paths provided, assume "."
	if len(args) == 0 {
		args = []string{"."}
	}

	// open the repository context
	r, err := repo.Open()
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", arg, err)
		}
		paths = append(paths, abs)
	}

	staged, err := r.Add(paths...)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		fmt.Println("Nothing to stage")
		return nil
	}

	fmt.Printf("Staged %d file(s)\n", len(staged))
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
