package graph

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/middleware"
	"github.com/keshon/wit/internal/repo"
	repograph "github.com/keshon/wit/internal/repo/graph"
)

type Command struct {
	dot bool
}

func (c *Command) Name() string      { return "graph" }
func (c *Command) Short() string     { return "g" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "graph [--dot]" }
func (c *Command) Brief() string     { return "Print the commit graph reachable from HEAD" }
func (c *Command) Help() string {
	return `Print every (child, parent) edge reachable from HEAD, one per line.

Options:
  --dot   Emit a Graphviz digraph instead, e.g. wit graph --dot | dot -Tpng > g.png`
}
func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.dot, "dot", false, "emit Graphviz DOT")
}

func (c *Command) Run(ctx *command.Context) error {
	r, err := repo.Open()
	if err != nil {
		return err
	}

	edges, err := r.Edges()
	if err != nil {
		return err
	}

	if c.dot {
		return WriteDOT(os.Stdout, r.Head(), edges)
	}
	if len(edges) == 0 {
		fmt.Println("No edges")
		return nil
	}
	for _, e := range edges {
		fmt.Printf("%s -> %s\n", e.Child, e.Parent)
	}
	return nil
}

// WriteDOT renders edges as a Graphviz digraph with HEAD highlighted.
func WriteDOT(w io.Writer, head string, edges []repograph.Edge) error {
	if _, err := fmt.Fprintln(w, "digraph wit {"); err != nil {
		return err
	}
	if head != "" {
		if _, err := fmt.Fprintf(w, "  %q [style=filled, fillcolor=lightblue];\n", head); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "  %q -> %q;\n", e.Child, e.Parent); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
