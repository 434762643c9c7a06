package repo

import (
	"fmt"
	"log/slog"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/repo/graph"
	"github.com/keshon/wit/internal/repo/meta"
)

// MergeResult describes a completed merge.
type MergeResult struct {
	Commit *meta.Commit
	Base   string   // common ancestor, empty if the lineages are disjoint
	Files  []string // files taken from the merged branch
}

// Merge combines branch into HEAD. Files are collected from the branch's
// lineage in breadth-first order, the nearest commit winning, until the
// first commit HEAD already reaches. They are staged over the current
// staging area and committed with parents [HEAD, branch tip]. The merged
// files are then written to the working tree.
func (r *Repository) Merge(branch, message string) (*MergeResult, error) {
	other, err := r.refs.BranchTarget(branch)
	if err != nil {
		return nil, err
	}
	head := r.refs.Head
	if head == "" {
		return nil, fmt.Errorf("cannot merge into an empty HEAD: %w", errs.ErrNoCommits)
	}
	if other == "" {
		return nil, fmt.Errorf("branch %q: %w", branch, errs.ErrNoCommits)
	}

	state, err := r.State()
	if err != nil {
		return nil, err
	}
	if state != Clean {
		return nil, fmt.Errorf("%w (%s)", errs.ErrMergeBlocked, state)
	}

	reachable, err := graph.BFS(head, r.Commits.Parents)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(reachable))
	for _, id := range reachable {
		seen[id] = true
	}
	if seen[other] {
		return nil, fmt.Errorf("%q: %w", branch, errs.ErrAlreadyUpToDate)
	}

	res := &MergeResult{}
	source := make(map[string]string) // file -> commit it is taken from
	err = graph.Walk(other, r.Commits.Parents, func(id string) error {
		if seen[id] {
			res.Base = id
			return graph.Stop
		}
		files, err := r.Commits.Files(id)
		if err != nil {
			return err
		}
		for _, rel := range files {
			if _, ok := source[rel]; ok {
				continue
			}
			source[rel] = id
			res.Files = append(res.Files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, rel := range res.Files {
		if err := r.Staging.StageFrom(r.Commits.SnapshotPath(source[rel]), rel); err != nil {
			return nil, err
		}
	}

	if message == "" {
		message = fmt.Sprintf("Merge branch '%s'", branch)
	}
	res.Commit, err = r.commit([]string{head, other}, message, true)
	if err != nil {
		return nil, err
	}

	if err := r.materialize(r.Staging.Dir, res.Files); err != nil {
		return nil, err
	}

	slog.Debug("merged",
		slog.String("branch", branch),
		slog.String("base", res.Base),
		slog.Int("files", len(res.Files)),
	)
	return res, nil
}
