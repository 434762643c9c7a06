package util

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/keshon/wit/internal/fs"
)

// WriteFileAtomic replaces path with data through a temp file in the same
// directory and a rename, so readers see either the old or the new content.
func WriteFileAtomic(fsys fs.FS, path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, tmpPath, err := fsys.CreateTempFile(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	committed := false
	defer func() {
		if !committed {
			fsys.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file %q: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file %q: %w", tmpPath, err)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %q to %q: %w", tmpPath, path, err)
	}
	committed = true
	return nil
}

// WriteJSON writes a JSON file atomically using the FS interface.
func WriteJSON(fsys fs.FS, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(fsys, path, data)
}

// ReadJSON reads a JSON file and unmarshals it into v
func ReadJSON(fsys fs.FS, path string, v any) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SortedKeys returns the keys of a map sorted alphabetically.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
