package command

import (
	"errors"
	"flag"
	"io"
	"reflect"
	"testing"
)

type fakeCommand struct {
	name    string
	aliases []string
	subs    []Command
	verbose bool
	got     *Context
	err     error
}

func (f *fakeCommand) Name() string           { return f.name }
func (f *fakeCommand) Short() string          { return "" }
func (f *fakeCommand) Aliases() []string      { return f.aliases }
func (f *fakeCommand) Usage() string          { return f.name }
func (f *fakeCommand) Brief() string          { return "fake" }
func (f *fakeCommand) Help() string           { return "fake command" }
func (f *fakeCommand) Subcommands() []Command { return f.subs }
func (f *fakeCommand) Flags(fs *flag.FlagSet) { fs.BoolVar(&f.verbose, "v", false, "") }
func (f *fakeCommand) Run(ctx *Context) error {
	f.got = ctx
	return f.err
}

func TestTreeResolve(t *testing.T) {
	tr := NewTree()
	sub := &fakeCommand{name: "list"}
	parent := &fakeCommand{name: "branch", aliases: []string{"br"}, subs: []Command{sub}}
	tr.Register(parent)

	node, rest, err := tr.Resolve([]string{"br", "feature"})
	if err != nil {
		t.Fatal(err)
	}
	if node.Cmd != parent || !reflect.DeepEqual(rest, []string{"feature"}) {
		t.Fatalf("resolved %v with rest %v", node.Cmd.Name(), rest)
	}

	node, rest, err = tr.Resolve([]string{"branch", "list"})
	if err != nil {
		t.Fatal(err)
	}
	if node.Cmd != sub || len(rest) != 0 {
		t.Fatalf("expected subcommand, got %v", node.Cmd.Name())
	}

	if _, _, err := tr.Resolve([]string{"nope"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}

	all := tr.All()
	if len(all) != 2 || all[0].Name() != "branch" || all[1].Name() != "list" {
		t.Fatalf("All() = %v", all)
	}
}

func TestApplyMiddlewaresOrder(t *testing.T) {
	var calls []string
	mw := func(tag string) Middleware {
		return func(cmd Command) Command {
			return &WrappedCommand{
				Command: cmd,
				Wrap: func(ctx *Context) error {
					calls = append(calls, tag)
					return cmd.Run(ctx)
				},
			}
		}
	}

	base := &fakeCommand{name: "x"}
	cmd := ApplyMiddlewares(base, mw("first"), mw("second"))
	if err := cmd.Run(&Context{}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(calls, []string{"second", "first"}) {
		t.Fatalf("calls %v", calls)
	}
	if cmd.Name() != "x" || base.got == nil {
		t.Fatal("wrapped command must keep its identity and run")
	}
}

func TestExecute(t *testing.T) {
	fake := &fakeCommand{name: "exec-test"}
	RegisterCommand(fake)

	if err := Execute([]string{"exec-test", "-v", "a", "b"}, io.Discard); err != nil {
		t.Fatal(err)
	}
	if !fake.verbose || !reflect.DeepEqual(fake.got.Args, []string{"a", "b"}) {
		t.Fatalf("flags not applied: verbose=%v args=%v", fake.verbose, fake.got.Args)
	}

	fake.err = errors.New("boom")
	if err := Execute([]string{"exec-test"}, io.Discard); err == nil || err.Error() != "boom" {
		t.Fatalf("expected command error, got %v", err)
	}

	if err := Execute([]string{"exec-test", "--bogus"}, io.Discard); err == nil {
		t.Fatal("expected flag error")
	}
	if err := Execute(nil, io.Discard); err == nil {
		t.Fatal("expected error without a command")
	}
	if err := Execute([]string{"missing-command"}, io.Discard); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestBeforeAbortsRun(t *testing.T) {
	base := &fakeCommand{name: "guarded"}
	blocked := errors.New("blocked")
	var seen string
	cmd := ApplyMiddlewares(base, Before(func(c Command, ctx *Context) error {
		seen = c.Name()
		return blocked
	}))

	if err := cmd.Run(&Context{}); !errors.Is(err, blocked) {
		t.Fatalf("expected check error, got %v", err)
	}
	if seen != "guarded" || base.got != nil {
		t.Fatalf("check saw %q, command ran: %v", seen, base.got != nil)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	tr := NewTree()
	tr.Register(&fakeCommand{name: "status", aliases: []string{"st"}})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on alias clash")
		}
	}()
	tr.Register(&fakeCommand{name: "stash", aliases: []string{"st"}})
}
