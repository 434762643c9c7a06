package repo

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/repo/meta"
)

// Add stages files or directories given as absolute paths. Adding the
// working tree root stages everything that is not ignored.
func (r *Repository) Add(paths ...string) ([]string, error) {
	var staged []string
	for _, p := range paths {
		parts, err := RelativeParts(p, r.Config.WorkingTreeDir)
		if err != nil {
			return staged, err
		}

		var rels []string
		if len(parts) == 0 {
			if rels, err = r.topLevelEntries(); err != nil {
				return staged, err
			}
		} else {
			rels = []string{path.Join(parts...)}
		}

		for _, rel := range rels {
			files, err := r.Staging.Stage(rel)
			staged = append(staged, files...)
			if err != nil {
				return staged, err
			}
		}
	}
	slog.Debug("staged files", slog.Int("count", len(staged)))
	return staged, nil
}

func (r *Repository) topLevelEntries() ([]string, error) {
	entries, err := r.FS.ReadDir(r.Config.WorkingTreeDir)
	if err != nil {
		return nil, fmt.Errorf("read working tree: %w", err)
	}
	var rels []string
	for _, e := range entries {
		if r.Staging.Ignore.Match(e.Name()) {
			continue
		}
		rels = append(rels, e.Name())
	}
	return rels, nil
}

// Commit records the staging area as a new commit on top of HEAD.
// Nothing is written when staging matches HEAD; created reports which case
// happened.
func (r *Repository) Commit(message string) (c *meta.Commit, created bool, err error) {
	changed, err := r.Staging.DiffAgainstCommit(r.headSnapshot())
	if err != nil {
		return nil, false, err
	}
	if len(changed) == 0 {
		slog.Debug("nothing to commit", slog.String("head", r.refs.Head))
		return nil, false, nil
	}

	var parents []string
	if r.refs.Head != "" {
		parents = []string{r.refs.Head}
	}
	c, err = r.commit(parents, message, false)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// commit snapshots staging and moves the references per meta.Advance.
func (r *Repository) commit(parents []string, message string, merge bool) (*meta.Commit, error) {
	if err := r.checkActive(); err != nil {
		return nil, err
	}

	c, err := r.Commits.Create(parents, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create commit: %w", err)
	}

	if err := r.refs.Advance(r.active, c.ID, merge); err != nil {
		return nil, errs.Storage("advance references", r.Config.ReferencesFile(), err)
	}
	if err := r.save(); err != nil {
		return nil, err
	}

	slog.Debug("created commit",
		slog.String("commit", c.ID),
		slog.Any("parents", c.ParentIDs),
		slog.String("branch", r.active),
		slog.Bool("merge", merge),
	)
	return c, nil
}

// checkActive fails when activated.txt names a branch references.txt does
// not have.
func (r *Repository) checkActive() error {
	if r.refs.HasBranch(r.active) {
		return nil
	}
	return errs.Storage("read active branch", r.Config.ActivatedFile(),
		fmt.Errorf("%q: %w", r.active, errs.ErrNoSuchBranch))
}

// materialize copies files from a tree into the working tree.
func (r *Repository) materialize(srcRoot string, files []string) error {
	for _, rel := range files {
		src := filepath.Join(srcRoot, filepath.FromSlash(rel))
		dst := filepath.Join(r.Config.WorkingTreeDir, filepath.FromSlash(rel))
		if err := fs.CopyFile(r.FS, src, dst); err != nil {
			return errs.Storage("restore", dst, err)
		}
	}
	return nil
}
