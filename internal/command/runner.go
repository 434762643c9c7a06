package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// RunCLI is the main entrypoint for executing commands.
// It runs the command named by args and exits with status 1 on failure.
func RunCLI(args []string) {
	if err := Execute(args, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// Execute resolves subcommands, applies flags and runs the target command.
// Flag parse diagnostics go to errOut.
func Execute(args []string, errOut io.Writer) error {
	if len(args) == 0 {
		return errors.New("no command provided (try 'wit help')")
	}

	node, remaining, err := ResolveCommand(args)
	if err != nil {
		return fmt.Errorf("%w: %s", err, args[0])
	}

	cmd := node.Cmd

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: wit %s\n", cmd.Usage())
		fs.PrintDefaults()
	}
	cmd.Flags(fs)
	if err := fs.Parse(remaining); err != nil {
		return err
	}

	ctx := &Context{
		Args:  fs.Args(),
		Flags: fs,
	}

	return cmd.Run(ctx)
}
