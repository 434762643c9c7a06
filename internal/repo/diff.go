package repo

import (
	"fmt"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/keshon/wit/internal/errs"
)

// FileDiff is the unified diff of one file.
type FileDiff struct {
	Path string
	Text string
}

// Diff returns unified diffs of staged files against the working tree, or
// with cached set, of HEAD against staging.
func (r *Repository) Diff(cached bool) ([]FileDiff, error) {
	var (
		paths    []string
		from, to string
		err      error
	)
	if cached {
		from, to = r.headSnapshot(), r.Staging.Dir
		paths, err = r.Staging.DiffAgainstCommit(from)
	} else {
		from, to = r.Staging.Dir, r.Config.WorkingTreeDir
		paths, err = r.Staging.Unstaged()
	}
	if err != nil {
		return nil, err
	}

	out := make([]FileDiff, 0, len(paths))
	for _, rel := range paths {
		a, err := r.fileLines(from, rel)
		if err != nil {
			return nil, err
		}
		b, err := r.fileLines(to, rel)
		if err != nil {
			return nil, err
		}

		ud := difflib.UnifiedDiff{
			A:        a,
			B:        b,
			FromFile: fmt.Sprintf("a/%s", rel),
			ToFile:   fmt.Sprintf("b/%s", rel),
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(ud)
		if err != nil {
			return nil, err
		}
		out = append(out, FileDiff{Path: rel, Text: text})
	}
	return out, nil
}

// fileLines reads rel below root. Missing files read as empty.
func (r *Repository) fileLines(root, rel string) ([]string, error) {
	if root == "" {
		return []string{}, nil
	}
	p := filepath.Join(root, filepath.FromSlash(rel))
	data, err := r.FS.ReadFile(p)
	if err != nil {
		if r.FS.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errs.Storage("read", p, err)
	}
	return difflib.SplitLines(string(data)), nil
}
