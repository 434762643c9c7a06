package repo

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/repo/meta"
	"github.com/keshon/wit/internal/repo/store/ignore"
	"github.com/keshon/wit/internal/repo/store/snapshot"
	"github.com/keshon/wit/internal/repo/store/staging"
	"github.com/keshon/wit/internal/util"
)

// Repository is an opened repository with its references loaded.
// Operations mutate the in-memory references and persist them last.
type Repository struct {
	Config  *config.RepoConfig
	FS      fs.FS
	Refs    *meta.RefStore
	Commits *snapshot.Store
	Staging *staging.Area

	refs   *meta.References
	active string
}

// NewRepository wires the stores for the working tree at root without
// touching the disk.
func NewRepository(fsys fs.FS, root string) (*Repository, error) {
	cfg := config.NewRepoConfig(root)
	if fsys.Exists(cfg.SettingsFile()) {
		if err := util.ReadJSON(fsys, cfg.SettingsFile(), &cfg.Settings); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", cfg.SettingsFile(), err)
		}
	}
	loc, err := cfg.Settings.Location()
	if err != nil {
		return nil, err
	}

	m, err := ignore.Load(fsys, cfg.IgnoreFile())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.IgnoreFile(), err)
	}

	return &Repository{
		Config:  cfg,
		FS:      fsys,
		Refs:    meta.NewRefStore(cfg, fsys),
		Commits: snapshot.NewStore(fsys, cfg.ImagesDir(), cfg.StagingDir(), loc),
		Staging: staging.NewArea(fsys, root, cfg.StagingDir(), m),
		refs:    meta.NewReferences(),
		active:  config.DefaultBranch,
	}, nil
}

// InitAt creates a repository in dir.
// Returns (*Repository, created, error); created is false with os.ErrExist
// when dir already holds one.
func InitAt(fsys fs.FS, dir string) (*Repository, bool, error) {
	r, err := NewRepository(fsys, dir)
	if err != nil {
		return nil, false, err
	}

	// Detect existing repo
	if fsys.Exists(r.Config.ReferencesFile()) {
		return r, false, os.ErrExist
	}

	// Create directories
	for _, d := range []string{r.Config.RepoDir, r.Config.ImagesDir(), r.Config.StagingDir()} {
		if err := fsys.MkdirAll(d, 0o755); err != nil {
			return nil, false, fmt.Errorf("failed to create dir %q: %w", d, err)
		}
	}

	if err := util.WriteJSON(fsys, r.Config.SettingsFile(), r.Config.Settings); err != nil {
		return nil, false, fmt.Errorf("failed to save %s: %w", config.SettingsFile, err)
	}

	// HEAD and master start at None
	if err := r.save(); err != nil {
		return nil, false, err
	}

	slog.Debug("initialized repository", slog.String("root", dir))
	return r, true, nil
}

// OpenAt opens the repository containing start or one of its parents.
func OpenAt(fsys fs.FS, start string) (*Repository, error) {
	root, err := FindRoot(fsys, start)
	if err != nil {
		return nil, err
	}
	r, err := NewRepository(fsys, root)
	if err != nil {
		return nil, err
	}

	if r.refs, err = r.Refs.Load(); err != nil {
		return nil, err
	}
	if r.active, err = r.Refs.LoadActive(); err != nil {
		return nil, err
	}

	slog.Debug("opened repository",
		slog.String("root", root),
		slog.String("head", r.refs.Head),
		slog.String("branch", r.active),
	)
	return r, nil
}

// Head returns the checked out commit id, empty before the first commit.
func (r *Repository) Head() string { return r.refs.Head }

// ActiveBranch returns the name of the checked out branch.
func (r *Repository) ActiveBranch() string { return r.active }

// References returns a copy of the loaded reference record.
func (r *Repository) References() meta.References {
	c := *r.refs
	c.Branches = append([]meta.Branch(nil), r.refs.Branches...)
	return c
}

// IsDetached reports whether HEAD is off the active branch's tip.
func (r *Repository) IsDetached() bool { return r.refs.IsDetached(r.active) }

// save persists the references record and the active branch.
func (r *Repository) save() error {
	if err := r.Refs.Save(r.refs); err != nil {
		return err
	}
	return r.Refs.SaveActive(r.active)
}

// headSnapshot returns the snapshot directory of HEAD, or "" before the
// first commit.
func (r *Repository) headSnapshot() string {
	if r.refs.Head == "" {
		return ""
	}
	return r.Commits.SnapshotPath(r.refs.Head)
}

// Open opens the repository enclosing the current directory.
func Open() (*Repository, error) {
	return OpenAt(fs.NewOSFS(), ".")
}
