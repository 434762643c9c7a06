package fs

import (
	"bufio"
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// SkipFunc reports whether a path (slash-separated, relative to the walk
// root) should be left out. Returning true for a directory prunes it.
type SkipFunc func(rel string, isDir bool) bool

// WalkFiles calls fn for every regular file below root in lexical order.
// rel is slash-separated and relative to root.
func WalkFiles(fsys FS, root string, skip SkipFunc, fn func(rel string) error) error {
	return walk(fsys, root, "", skip, fn)
}

func walk(fsys FS, dir, rel string, skip SkipFunc, fn func(rel string) error) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		childRel := path.Join(rel, e.Name())
		if skip != nil && skip(childRel, e.IsDir()) {
			continue
		}
		childAbs := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := walk(fsys, childAbs, childRel, skip, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(childRel); err != nil {
			return err
		}
	}
	return nil
}

// ListFiles returns every file below root as sorted slash-separated
// relative paths. A missing root yields an empty list.
func ListFiles(fsys FS, root string, skip SkipFunc) ([]string, error) {
	if !fsys.IsDir(root) {
		return nil, nil
	}
	var out []string
	err := WalkFiles(fsys, root, skip, func(rel string) error {
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CopyFile copies src to dst, creating dst's parent directories and keeping
// the source permission bits.
func CopyFile(fsys FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %q: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("copy %q: is a directory", src)
	}
	data, err := fsys.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %q: %w", src, err)
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dir for %q: %w", dst, err)
	}
	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	if err := fsys.WriteFile(dst, data, perm); err != nil {
		return fmt.Errorf("write %q: %w", dst, err)
	}
	return nil
}

// CopyTree copies every file below src into dst, preserving relative paths.
// It returns the relative paths copied.
func CopyTree(fsys FS, src, dst string, skip SkipFunc) ([]string, error) {
	if err := fsys.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf("create dir %q: %w", dst, err)
	}
	var copied []string
	err := WalkFiles(fsys, src, skip, func(rel string) error {
		from := filepath.Join(src, filepath.FromSlash(rel))
		to := filepath.Join(dst, filepath.FromSlash(rel))
		if err := CopyFile(fsys, from, to); err != nil {
			return err
		}
		copied = append(copied, rel)
		return nil
	})
	if err != nil {
		return copied, err
	}
	return copied, nil
}

// ReadText returns the file content with surrounding whitespace trimmed.
func ReadText(fsys FS, p string) (string, error) {
	data, err := fsys.ReadFile(p)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadLines returns the file's lines without line terminators. Other
// whitespace is kept. Trailing blank lines are dropped.
func ReadLines(fsys FS, p string) ([]string, error) {
	data, err := fsys.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
