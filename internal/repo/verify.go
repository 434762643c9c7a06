package repo

import (
	"errors"
	"fmt"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/repo/graph"
	"github.com/keshon/wit/internal/util"
)

// Verify checks that the active branch exists, that every reference points
// at a stored commit, and that every commit reachable from them has its
// snapshot and parents.
// All problems found are returned joined; each matches errs.ErrStorageIO.
func (r *Repository) Verify() error {
	var problems []error
	report := func(format string, args ...any) {
		problems = append(problems, errs.Storage("verify", r.Config.RepoDir, fmt.Errorf(format, args...)))
	}

	if err := r.checkActive(); err != nil {
		problems = append(problems, err)
	}

	tips := map[string]string{config.HeadRef: r.refs.Head}
	for _, b := range r.refs.AllBranches() {
		tips[b.Name] = b.Target
	}

	// missing commits are reported once and not walked past
	parentsOf := func(id string) ([]string, error) {
		if !r.Commits.Exists(id) {
			return nil, nil
		}
		return r.Commits.Parents(id)
	}

	checked := make(map[string]bool)
	for _, name := range util.SortedKeys(tips) {
		id := tips[name]
		if id == "" {
			continue
		}
		if !r.Commits.Exists(id) {
			report("%s points at missing commit %s", name, id)
			continue
		}

		err := graph.Walk(id, parentsOf, func(c string) error {
			if checked[c] || !r.Commits.Exists(c) {
				return nil
			}
			checked[c] = true
			if !r.FS.IsDir(r.Commits.SnapshotPath(c)) {
				report("commit %s has no snapshot", c)
			}
			parents, err := parentsOf(c)
			if err != nil {
				return err
			}
			for _, p := range parents {
				if !r.Commits.Exists(p) {
					report("commit %s has missing parent %s", c, p)
				}
			}
			return nil
		})
		if err != nil {
			problems = append(problems, err)
		}
	}

	// records no reference reaches must still parse
	if _, err := r.Commits.List(); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}
