package repo

// Status summarizes the repository as shown by wit status.
type Status struct {
	Head      string
	Branch    string
	Detached  bool
	Staged    []string // staging vs HEAD
	Unstaged  []string // working tree vs staging
	Untracked []string
	State     State
}

// Status collects HEAD, the active branch and the staging diffs.
func (r *Repository) Status() (*Status, error) {
	st := &Status{
		Head:     r.refs.Head,
		Branch:   r.active,
		Detached: r.IsDetached(),
	}

	var err error
	if st.Staged, err = r.Staging.DiffAgainstCommit(r.headSnapshot()); err != nil {
		return nil, err
	}
	if st.Unstaged, err = r.Staging.Unstaged(); err != nil {
		return nil, err
	}
	if st.Untracked, err = r.Staging.DiffAgainstWorkingTree(); err != nil {
		return nil, err
	}

	switch {
	case len(st.Staged) > 0:
		st.State = HasStagedChanges
	case len(st.Unstaged) > 0:
		st.State = HasUnstagedChanges
	default:
		st.State = Clean
	}
	return st, nil
}
