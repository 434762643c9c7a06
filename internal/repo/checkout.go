package repo

import (
	"fmt"
	"log/slog"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/repo/store/snapshot"
)

// Target is a resolved checkout destination.
type Target struct {
	CommitID string
	Branch   string // active branch after checkout
}

// Resolve maps a checkout argument to a commit: "master", then a commit id
// (the active branch is kept), then a branch name.
func (r *Repository) Resolve(name string) (Target, error) {
	if name == config.DefaultBranch {
		return Target{CommitID: r.refs.Master, Branch: config.DefaultBranch}, nil
	}
	if snapshot.IsCommitID(name) && r.Commits.Exists(name) {
		return Target{CommitID: name, Branch: r.active}, nil
	}
	id, err := r.refs.BranchTarget(name)
	if err != nil {
		return Target{}, err
	}
	return Target{CommitID: id, Branch: name}, nil
}

// Checkout restores the snapshot of target into the working tree and moves
// HEAD to it. Working tree files the snapshot does not contain are left
// alone. A repository that is not clean fails with ErrCheckoutBlocked
// before name is looked at, and nothing changes.
func (r *Repository) Checkout(name string) (Target, error) {
	state, err := r.State()
	if err != nil {
		return Target{}, err
	}
	if state != Clean {
		return Target{}, fmt.Errorf("%w (%s)", errs.ErrCheckoutBlocked, state)
	}

	t, err := r.Resolve(name)
	if err != nil {
		return Target{}, err
	}

	snap := ""
	if t.CommitID != "" {
		snap = r.Commits.SnapshotPath(t.CommitID)
		files, err := r.Commits.Files(t.CommitID)
		if err != nil {
			return Target{}, err
		}
		if err := r.materialize(snap, files); err != nil {
			return Target{}, err
		}
	}
	if err := r.Staging.ResetTo(snap); err != nil {
		return Target{}, err
	}

	r.refs.Head = t.CommitID
	r.active = t.Branch
	if err := r.save(); err != nil {
		return Target{}, err
	}

	slog.Debug("checked out",
		slog.String("commit", t.CommitID),
		slog.String("branch", t.Branch),
		slog.Bool("detached", r.IsDetached()),
	)
	return t, nil
}
