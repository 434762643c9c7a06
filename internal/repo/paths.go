package repo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
)

// FindRoot walks upward from start to the first directory holding a .wit
// directory.
func FindRoot(fsys fs.FS, start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", start, err)
	}
	for {
		if fsys.IsDir(filepath.Join(dir, config.RepoDir)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.ErrRepositoryNotFound
		}
		dir = parent
	}
}

// RelativeParts returns the path segments leading from base to path.
// path must be base itself or lie below it.
func RelativeParts(path, base string) ([]string, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return nil, fmt.Errorf("%q is not under %q: %w", path, base, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return nil, nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, fmt.Errorf("%q is outside %q", path, base)
	}
	return strings.Split(rel, "/"), nil
}
