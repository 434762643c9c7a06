package meta

import (
	"fmt"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/util"
)

// RefStore persists References and the active branch name.
type RefStore struct {
	Config *config.RepoConfig
	FS     fs.FS
}

// NewRefStore creates a RefStore for the repository described by cfg.
func NewRefStore(cfg *config.RepoConfig, fsys fs.FS) *RefStore {
	return &RefStore{Config: cfg, FS: fsys}
}

// Load reads references.txt. Missing or malformed files are storage errors.
func (s *RefStore) Load() (*References, error) {
	path := s.Config.ReferencesFile()
	lines, err := fs.ReadLines(s.FS, path)
	if err != nil {
		return nil, errs.Storage("read references", path, err)
	}
	refs, err := DecodeReferences(lines)
	if err != nil {
		return nil, errs.Storage("parse references", path, err)
	}
	return refs, nil
}

// Save replaces references.txt in full.
func (s *RefStore) Save(refs *References) error {
	path := s.Config.ReferencesFile()
	if err := util.WriteFileAtomic(s.FS, path, refs.Encode()); err != nil {
		return errs.Storage("write references", path, err)
	}
	return nil
}

// LoadActive returns the name of the checked out branch.
func (s *RefStore) LoadActive() (string, error) {
	path := s.Config.ActivatedFile()
	name, err := fs.ReadText(s.FS, path)
	if err != nil {
		return "", errs.Storage("read active branch", path, err)
	}
	if name == "" {
		return "", errs.Storage("parse active branch", path, fmt.Errorf("empty file"))
	}
	return name, nil
}

// SaveActive replaces activated.txt.
func (s *RefStore) SaveActive(name string) error {
	path := s.Config.ActivatedFile()
	if err := util.WriteFileAtomic(s.FS, path, []byte(name)); err != nil {
		return errs.Storage("write active branch", path, err)
	}
	return nil
}
