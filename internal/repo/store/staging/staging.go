package staging

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/repo/store/ignore"
)

// Area is the staging area: a mirror of the working tree under
// .wit/staging_area holding what the next commit will contain.
type Area struct {
	FS     fs.FS
	Root   string // working tree
	Dir    string // staging_area
	Ignore *ignore.Matcher
}

// NewArea returns the staging area for a working tree.
func NewArea(fsys fs.FS, root, dir string, m *ignore.Matcher) *Area {
	if m == nil {
		m = ignore.New()
	}
	return &Area{FS: fsys, Root: root, Dir: dir, Ignore: m}
}

func (a *Area) abs(base, rel string) string {
	return filepath.Join(base, filepath.FromSlash(rel))
}

func (a *Area) skipWorkingTree(rel string, isDir bool) bool {
	return a.Ignore.Skip(rel, isDir)
}

// Stage copies the working tree file or directory at rel into the staging
// area. Directories are copied recursively, leaving out ignored paths.
// It returns the staged paths.
func (a *Area) Stage(rel string) ([]string, error) {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, fmt.Errorf("%q is outside the working tree", rel)
	}
	if first, _, _ := strings.Cut(rel, "/"); first == config.RepoDir {
		return nil, fmt.Errorf("refusing to stage repository internals %q", rel)
	}

	src := a.abs(a.Root, rel)
	info, err := a.FS.Stat(src)
	if err != nil {
		if a.FS.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", rel, errs.ErrPathNotFound)
		}
		return nil, errs.Storage("stat", src, err)
	}

	if !info.IsDir() {
		if err := fs.CopyFile(a.FS, src, a.abs(a.Dir, rel)); err != nil {
			return nil, errs.Storage("stage", src, err)
		}
		return []string{rel}, nil
	}

	var staged []string
	err = fs.WalkFiles(a.FS, src, func(sub string, isDir bool) bool {
		return a.skipWorkingTree(path.Join(rel, sub), isDir)
	}, func(sub string) error {
		p := path.Join(rel, sub)
		if err := fs.CopyFile(a.FS, a.abs(a.Root, p), a.abs(a.Dir, p)); err != nil {
			return err
		}
		staged = append(staged, p)
		return nil
	})
	if err != nil {
		return staged, errs.Storage("stage", src, err)
	}
	return staged, nil
}

// StageFrom stages the file rel taken from another tree, such as the
// snapshot of a commit being merged.
func (a *Area) StageFrom(srcRoot, rel string) error {
	src := a.abs(srcRoot, rel)
	if !a.FS.Exists(src) {
		return fmt.Errorf("%s: %w", src, errs.ErrPathNotFound)
	}
	if err := fs.CopyFile(a.FS, src, a.abs(a.Dir, rel)); err != nil {
		return errs.Storage("stage", src, err)
	}
	return nil
}

// Files lists every staged path, sorted.
func (a *Area) Files() ([]string, error) {
	files, err := fs.ListFiles(a.FS, a.Dir, nil)
	if err != nil {
		return nil, errs.Storage("list staging", a.Dir, err)
	}
	return files, nil
}

// Path returns the location of a staged file.
func (a *Area) Path(rel string) string { return a.abs(a.Dir, rel) }

// DiffAgainstCommit returns the paths where staging and the snapshot at
// snapshotDir disagree: staged files that differ from or are missing in the
// snapshot, and snapshot files no longer staged. An empty snapshotDir stands
// for the empty root commit.
func (a *Area) DiffAgainstCommit(snapshotDir string) ([]string, error) {
	staged, err := a.Files()
	if err != nil {
		return nil, err
	}
	if snapshotDir == "" {
		return staged, nil
	}

	var changed []string
	seen := make(map[string]bool, len(staged))
	for _, rel := range staged {
		seen[rel] = true
		same, err := fs.Same(a.FS, a.abs(a.Dir, rel), a.abs(snapshotDir, rel))
		if err != nil {
			return nil, errs.Storage("compare", rel, err)
		}
		if !same {
			changed = append(changed, rel)
		}
	}

	committed, err := fs.ListFiles(a.FS, snapshotDir, nil)
	if err != nil {
		return nil, errs.Storage("list snapshot", snapshotDir, err)
	}
	for _, rel := range committed {
		if !seen[rel] {
			changed = append(changed, rel)
		}
	}
	sort.Strings(changed)
	return changed, nil
}

// DiffAgainstWorkingTree returns untracked files: working tree files that
// are neither staged nor ignored.
func (a *Area) DiffAgainstWorkingTree() ([]string, error) {
	staged, err := a.Files()
	if err != nil {
		return nil, err
	}
	tracked := make(map[string]bool, len(staged))
	for _, rel := range staged {
		tracked[rel] = true
	}

	all, err := fs.ListFiles(a.FS, a.Root, a.skipWorkingTree)
	if err != nil {
		return nil, errs.Storage("list working tree", a.Root, err)
	}
	var untracked []string
	for _, rel := range all {
		if !tracked[rel] {
			untracked = append(untracked, rel)
		}
	}
	return untracked, nil
}

// Unstaged returns staged files whose working tree copy was modified or
// removed since staging.
func (a *Area) Unstaged() ([]string, error) {
	staged, err := a.Files()
	if err != nil {
		return nil, err
	}
	var changed []string
	for _, rel := range staged {
		same, err := fs.Same(a.FS, a.abs(a.Dir, rel), a.abs(a.Root, rel))
		if err != nil {
			return nil, errs.Storage("compare", rel, err)
		}
		if !same {
			changed = append(changed, rel)
		}
	}
	return changed, nil
}

// ResetTo replaces the staging content with the snapshot at snapshotDir.
// An empty snapshotDir empties the staging area.
func (a *Area) ResetTo(snapshotDir string) error {
	if err := a.FS.RemoveAll(a.Dir); err != nil {
		return errs.Storage("reset staging", a.Dir, err)
	}
	if snapshotDir == "" {
		if err := a.FS.MkdirAll(a.Dir, 0o755); err != nil {
			return errs.Storage("reset staging", a.Dir, err)
		}
		return nil
	}
	if _, err := fs.CopyTree(a.FS, snapshotDir, a.Dir, nil); err != nil {
		return errs.Storage("reset staging", a.Dir, err)
	}
	return nil
}
