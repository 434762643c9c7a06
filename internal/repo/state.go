package repo

// State classifies the repository for operations that rewrite the working
// tree.
type State int

const (
	// Clean: staging matches HEAD and the working tree matches staging.
	Clean State = iota
	// HasStagedChanges: staging differs from HEAD.
	HasStagedChanges
	// HasUnstagedChanges: a staged file was modified or removed in the
	// working tree.
	HasUnstagedChanges
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case HasStagedChanges:
		return "changes to be committed"
	case HasUnstagedChanges:
		return "changes not staged for commit"
	}
	return "unknown"
}

// State derives the repository state from the staging diffs. Untracked files
// do not count.
func (r *Repository) State() (State, error) {
	staged, err := r.Staging.DiffAgainstCommit(r.headSnapshot())
	if err != nil {
		return Clean, err
	}
	if len(staged) > 0 {
		return HasStagedChanges, nil
	}
	unstaged, err := r.Staging.Unstaged()
	if err != nil {
		return Clean, err
	}
	if len(unstaged) > 0 {
		return HasUnstagedChanges, nil
	}
	return Clean, nil
}
