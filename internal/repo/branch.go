package repo

import (
	"log/slog"

	"github.com/keshon/wit/internal/repo/meta"
)

// BranchInfo is a branch as listed to the user.
type BranchInfo struct {
	meta.Branch
	Active bool
}

// CreateBranch adds a branch pointing at HEAD. The active branch does not
// change.
func (r *Repository) CreateBranch(name string) (meta.Branch, error) {
	if err := r.refs.AddBranch(name, r.refs.Head); err != nil {
		return meta.Branch{}, err
	}
	if err := r.Refs.Save(r.refs); err != nil {
		return meta.Branch{}, err
	}
	slog.Debug("created branch", slog.String("branch", name), slog.String("commit", r.refs.Head))
	return meta.Branch{Name: name, Target: r.refs.Head}, nil
}

// ListBranches returns master followed by the other branches in creation
// order.
func (r *Repository) ListBranches() []BranchInfo {
	all := r.refs.AllBranches()
	out := make([]BranchInfo, 0, len(all))
	for _, b := range all {
		out = append(out, BranchInfo{Branch: b, Active: b.Name == r.active})
	}
	return out
}
