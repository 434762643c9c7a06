package snapshot

import (
	"time"

	"github.com/keshon/wit/internal/fs"
)

// Store keeps commit snapshots and their metadata records under images/.
// Each commit is a full copy of the staging tree at images/<id>/ plus a
// three-line record at images/<id>.txt.
type Store struct {
	FS         fs.FS
	ImagesDir  string
	StagingDir string
	Location   *time.Location

	// Now returns the commit time; tests pin it.
	Now func() time.Time
}

// NewStore returns a store rooted at imagesDir that snapshots stagingDir.
func NewStore(fsys fs.FS, imagesDir, stagingDir string, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		FS:         fsys,
		ImagesDir:  imagesDir,
		StagingDir: stagingDir,
		Location:   loc,
		Now:        time.Now,
	}
}
