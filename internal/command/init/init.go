package initialize

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
)

type Command struct {
	quiet bool
}

func (c *Command) Name() string      { return "init" }
func (c *Command) Short() string     { return "i" }
func (c *Command) Aliases() []string { return []string{"initialize"} }
func (c *Command) Usage() string     { return "init [-q] [directory]" }
func (c *Command) Brief() string     { return "Initialize a new repository" }
func (c *Command) Help() string {
	return `Initialize a new repository in the current directory.

Creates .wit/ with an empty staging area, HEAD and master set to None,
and master as the active branch.

Options:
  -q    Suppress normal output.

Examples:
  wit init
  wit init ./project`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.quiet, "q", false, "suppress normal output")
}

func (c *Command) Run(ctx *command.Context) error {
	dir := "."
	if len(ctx.Args) > 0 {
		dir = ctx.Args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", dir, err)
	}

	osfs := fs.NewOSFS()
	if err := osfs.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", abs, err)
	}

	r, created, err := repo.InitAt(osfs, abs)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			if !c.quiet {
				fmt.Printf("Repository already exists in %q\n", r.Config.RepoDir)
			}
			return nil
		}
		return err
	}

	if !c.quiet && created {
		fmt.Printf("Initialized empty repository in %q\n", r.Config.RepoDir)
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
