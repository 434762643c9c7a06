// Command generate_readme renders README.md from README.md.tmpl and the
// registered commands. Run it from the repository root.
package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/util"

	_ "github.com/keshon/wit/internal/command/add"
	_ "github.com/keshon/wit/internal/command/branch"
	_ "github.com/keshon/wit/internal/command/checkout"
	_ "github.com/keshon/wit/internal/command/commit"
	_ "github.com/keshon/wit/internal/command/diff"
	_ "github.com/keshon/wit/internal/command/graph"
	_ "github.com/keshon/wit/internal/command/help"
	_ "github.com/keshon/wit/internal/command/init"
	_ "github.com/keshon/wit/internal/command/log"
	_ "github.com/keshon/wit/internal/command/merge"
	_ "github.com/keshon/wit/internal/command/status"
	_ "github.com/keshon/wit/internal/command/verify"
)

const (
	templatePath = "README.md.tmpl"
	outputPath   = "README.md"
)

type commandDoc struct {
	Name    string
	Aliases []string
	Usage   string
	Brief   string
	Help    string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "generate_readme:", err)
		os.Exit(1)
	}
	fmt.Println(outputPath, "generated")
}

func run() error {
	osfs := fs.NewOSFS()

	src, err := osfs.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	tpl, err := template.New("readme").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var docs []commandDoc
	for _, cmd := range command.AllCommands() {
		docs = append(docs, commandDoc{
			Name:    cmd.Name(),
			Aliases: cmd.Aliases(),
			Usage:   cmd.Usage(),
			Brief:   cmd.Brief(),
			Help:    cmd.Help(),
		})
	}

	var out bytes.Buffer
	if err := tpl.Execute(&out, map[string]any{"Commands": docs}); err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	return util.WriteFileAtomic(osfs, outputPath, out.Bytes())
}
