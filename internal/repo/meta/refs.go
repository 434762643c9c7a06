package meta

import (
	"fmt"
	"strings"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
)

// Branch is a named pointer to a commit.
type Branch struct {
	Name   string
	Target string
}

// References is the in-memory form of references.txt. Empty ids stand for
// the None placeholder.
type References struct {
	Head     string
	Master   string
	Branches []Branch // excludes master, insertion order
}

// NewReferences returns the record written by init.
func NewReferences() *References {
	return &References{}
}

// BranchTarget returns the commit a branch points to.
func (r *References) BranchTarget(name string) (string, error) {
	if name == config.DefaultBranch {
		return r.Master, nil
	}
	for _, b := range r.Branches {
		if b.Name == name {
			return b.Target, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errs.ErrNoSuchBranch, name)
}

// HasBranch reports whether name is master or a created branch.
func (r *References) HasBranch(name string) bool {
	_, err := r.BranchTarget(name)
	return err == nil
}

// AllBranches returns master followed by the other branches.
func (r *References) AllBranches() []Branch {
	out := make([]Branch, 0, len(r.Branches)+1)
	out = append(out, Branch{Name: config.DefaultBranch, Target: r.Master})
	return append(out, r.Branches...)
}

// AddBranch appends a branch. Names are unique.
func (r *References) AddBranch(name, commitID string) error {
	if err := ValidateBranchName(name); err != nil {
		return err
	}
	if r.HasBranch(name) {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateBranch, name)
	}
	r.Branches = append(r.Branches, Branch{Name: name, Target: commitID})
	return nil
}

// SetBranchTarget moves an existing branch.
func (r *References) SetBranchTarget(name, commitID string) error {
	if name == config.DefaultBranch {
		r.Master = commitID
		return nil
	}
	for i := range r.Branches {
		if r.Branches[i].Name == name {
			r.Branches[i].Target = commitID
			return nil
		}
	}
	return fmt.Errorf("%w: %q", errs.ErrNoSuchBranch, name)
}

// IsDetached reports whether HEAD is off the active branch's tip.
func (r *References) IsDetached(active string) bool {
	target, err := r.BranchTarget(active)
	return err != nil || target != r.Head
}

// Advance moves HEAD to a new commit and decides which branch follows it:
//  1. on master with master == HEAD: HEAD and master move;
//  2. HEAD on the active branch's tip, or a merge commit: HEAD and the
//     active branch move;
//  3. otherwise HEAD moves alone.
//
// An active branch missing from the record is an error and nothing moves.
func (r *References) Advance(active, commitID string, merge bool) error {
	if !r.HasBranch(active) {
		return fmt.Errorf("active branch %q: %w", active, errs.ErrNoSuchBranch)
	}
	switch {
	case active == config.DefaultBranch && r.Master == r.Head:
		r.Master = commitID
	case !r.IsDetached(active) || merge:
		if err := r.SetBranchTarget(active, commitID); err != nil {
			return err
		}
	}
	r.Head = commitID
	return nil
}

// ValidateBranchName rejects names that cannot round-trip through
// references.txt or that shadow reserved refs.
func ValidateBranchName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", errs.ErrInvalidBranchName)
	case name == config.HeadRef || name == config.NoneRef:
		return fmt.Errorf("%w: %q is reserved", errs.ErrInvalidBranchName, name)
	case strings.ContainsAny(name, "=\r\n\t ,"):
		return fmt.Errorf("%w: %q contains a forbidden character", errs.ErrInvalidBranchName, name)
	}
	return nil
}

// Encode renders the record in references.txt format.
func (r *References) Encode() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%s\n", config.HeadRef, refValue(r.Head))
	fmt.Fprintf(&b, "%s=%s\n", config.DefaultBranch, refValue(r.Master))
	for _, br := range r.Branches {
		fmt.Fprintf(&b, "%s=%s\n", br.Name, refValue(br.Target))
	}
	return []byte(b.String())
}

// DecodeReferences parses references.txt lines.
func DecodeReferences(lines []string) (*References, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("expected at least 2 lines, got %d", len(lines))
	}
	refs := &References{}

	head, err := expectLine(lines[0], config.HeadRef)
	if err != nil {
		return nil, err
	}
	refs.Head = head

	master, err := expectLine(lines[1], config.DefaultBranch)
	if err != nil {
		return nil, err
	}
	refs.Master = master

	for i, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("line %d: malformed branch entry %q", i+3, line)
		}
		if refs.HasBranch(name) {
			return nil, fmt.Errorf("line %d: %w: %q", i+3, errs.ErrDuplicateBranch, name)
		}
		refs.Branches = append(refs.Branches, Branch{Name: name, Target: parseRef(value)})
	}
	return refs, nil
}

func expectLine(line, key string) (string, error) {
	name, value, ok := strings.Cut(line, "=")
	if !ok || name != key {
		return "", fmt.Errorf("expected %s=<id>, got %q", key, line)
	}
	return parseRef(value), nil
}

func refValue(id string) string {
	if id == "" {
		return config.NoneRef
	}
	return id
}

func parseRef(v string) string {
	v = strings.TrimSpace(v)
	if v == config.NoneRef {
		return ""
	}
	return v
}
