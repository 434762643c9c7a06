package command

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCommand is returned when args name no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// Node is one level of the command tree. Aliases share the node of the
// command they belong to.
type Node struct {
	Cmd         Command
	Subcommands map[string]*Node
}

func newNode(cmd Command) *Node {
	return &Node{Cmd: cmd, Subcommands: make(map[string]*Node)}
}

// CommandTree maps names and aliases to commands.
type CommandTree struct {
	root *Node
}

func NewTree() *CommandTree {
	return &CommandTree{root: newNode(nil)}
}

// Register inserts cmd and its subcommands. Registering a name or alias
// twice at the same level panics: commands register from init and a clash
// is a build mistake.
func (t *CommandTree) Register(cmd Command) {
	if err := t.insert(t.root, cmd); err != nil {
		panic(err)
	}
}

func (t *CommandTree) insert(parent *Node, cmd Command) error {
	node := newNode(cmd)
	for _, name := range append([]string{cmd.Name()}, cmd.Aliases()...) {
		if prev, ok := parent.Subcommands[name]; ok {
			return fmt.Errorf("command %q: name %q already taken by %q", cmd.Name(), name, prev.Cmd.Name())
		}
		parent.Subcommands[name] = node
	}
	for _, sub := range cmd.Subcommands() {
		if err := t.insert(node, sub); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a top-level command by name or alias.
func (t *CommandTree) Get(name string) (Command, bool) {
	node, ok := t.root.Subcommands[name]
	if !ok {
		return nil, false
	}
	return node.Cmd, true
}

// Resolve follows args down the tree as far as they name subcommands and
// returns the deepest node with the unconsumed args.
func (t *CommandTree) Resolve(args []string) (*Node, []string, error) {
	node := t.root
	for len(args) > 0 {
		next, ok := node.Subcommands[args[0]]
		if !ok {
			break
		}
		node, args = next, args[1:]
	}
	if node.Cmd == nil {
		return nil, nil, ErrUnknownCommand
	}
	return node, args, nil
}

// All returns every command of the tree once, sorted by name.
func (t *CommandTree) All() []Command {
	var cmds []Command
	seen := make(map[*Node]bool)

	var walk func(*Node)
	walk = func(n *Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		if n.Cmd != nil {
			cmds = append(cmds, n.Cmd)
		}
		for _, sub := range n.Subcommands {
			walk(sub)
		}
	}
	walk(t.root)

	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}
