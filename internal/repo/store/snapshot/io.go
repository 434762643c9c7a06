package snapshot

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/repo/meta"
	"github.com/keshon/wit/internal/util"
)

const recordExt = ".txt"

// SnapshotPath returns the directory holding the snapshot of commit id.
func (s *Store) SnapshotPath(id string) string {
	return filepath.Join(s.ImagesDir, id)
}

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.ImagesDir, id+recordExt)
}

// Exists reports whether a metadata record for id is present.
func (s *Store) Exists(id string) bool {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return false
	}
	return s.FS.Exists(s.recordPath(id))
}

// Create snapshots the staging area as a new commit with the given parents.
// The metadata record is written last so a commit without a record is never
// visible to Exists or Get.
func (s *Store) Create(parentIDs []string, message string) (*meta.Commit, error) {
	ts := s.Now().In(s.Location)

	var id string
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			return nil, fmt.Errorf("could not allocate a unique commit id after %d attempts", attempt)
		}
		id = NewCommitID(parentIDs, message, ts)
		if !s.FS.Exists(s.recordPath(id)) && !s.FS.Exists(s.SnapshotPath(id)) {
			break
		}
	}

	c := &meta.Commit{
		ID:        id,
		ParentIDs: append([]string(nil), parentIDs...),
		Timestamp: ts.Truncate(time.Second),
		Message:   message,
	}

	dst := s.SnapshotPath(id)
	if s.FS.IsDir(s.StagingDir) {
		if _, err := fs.CopyTree(s.FS, s.StagingDir, dst, nil); err != nil {
			return nil, errs.Storage("snapshot", dst, err)
		}
	} else if err := s.FS.MkdirAll(dst, 0o755); err != nil {
		return nil, errs.Storage("snapshot", dst, err)
	}

	if err := util.WriteFileAtomic(s.FS, s.recordPath(id), c.Encode()); err != nil {
		return nil, errs.Storage("write commit", s.recordPath(id), err)
	}
	return c, nil
}

// Get reads the metadata record of commit id.
func (s *Store) Get(id string) (*meta.Commit, error) {
	if !s.Exists(id) {
		return nil, fmt.Errorf("commit %q not found", id)
	}
	p := s.recordPath(id)
	lines, err := fs.ReadLines(s.FS, p)
	if err != nil {
		return nil, errs.Storage("read commit", p, err)
	}
	c, err := meta.DecodeCommit(id, lines)
	if err != nil {
		return nil, errs.Storage("parse commit", p, err)
	}
	return c, nil
}

// Parents returns the parent ids of commit id. The empty id has none.
func (s *Store) Parents(id string) ([]string, error) {
	if id == "" {
		return nil, nil
	}
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return c.ParentIDs, nil
}

// Files lists the snapshot content of commit id as sorted relative paths.
func (s *Store) Files(id string) ([]string, error) {
	if id == "" {
		return nil, nil
	}
	files, err := fs.ListFiles(s.FS, s.SnapshotPath(id), nil)
	if err != nil {
		return nil, errs.Storage("list snapshot", s.SnapshotPath(id), err)
	}
	return files, nil
}

// List returns every stored commit ordered by timestamp, then id.
func (s *Store) List() ([]*meta.Commit, error) {
	if !s.FS.IsDir(s.ImagesDir) {
		return nil, nil
	}
	entries, err := s.FS.ReadDir(s.ImagesDir)
	if err != nil {
		return nil, errs.Storage("list commits", s.ImagesDir, err)
	}

	var commits []*meta.Commit
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		c, err := s.Get(strings.TrimSuffix(e.Name(), recordExt))
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	sort.Slice(commits, func(i, j int) bool {
		if !commits[i].Timestamp.Equal(commits[j].Timestamp) {
			return commits[i].Timestamp.Before(commits[j].Timestamp)
		}
		return commits[i].ID < commits[j].ID
	})
	return commits, nil
}
