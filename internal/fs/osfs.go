package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// OSFS is the FS used by the wit binary. Every call goes through Hooks.
type OSFS struct{}

func NewOSFS() *OSFS {
	return &OSFS{}
}

func (r *OSFS) Open(path string) (io.ReadSeekCloser, error) {
	f, err := sys.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *OSFS) Stat(path string) (os.FileInfo, error) {
	return sys.Stat(path)
}

func (r *OSFS) ReadFile(path string) ([]byte, error) {
	return sys.ReadFile(path)
}

func (r *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return sys.ReadDir(path)
}

func (r *OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return sys.WriteFile(path, data, perm)
}

func (r *OSFS) MkdirAll(path string, perm os.FileMode) error {
	return sys.MkdirAll(path, perm)
}

func (r *OSFS) Remove(path string) error {
	return sys.Remove(path)
}

func (r *OSFS) RemoveAll(path string) error {
	return sys.RemoveAll(path)
}

func (r *OSFS) Rename(oldPath, newPath string) error {
	return sys.Rename(oldPath, newPath)
}

func (r *OSFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	f, err := sys.CreateTemp(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return f, f.Name(), nil
}

func (r *OSFS) IsNotExist(err error) bool {
	return sys.IsNotExist(err)
}

func (r *OSFS) IsDir(path string) bool {
	fi, err := sys.Stat(path)
	return err == nil && fi.IsDir()
}

func (r *OSFS) Exists(path string) bool {
	_, err := sys.Stat(path)
	return err == nil
}

// Digest memory-maps the file and streams it through the hasher.
func (r *OSFS) Digest(path string) (string, error) {
	m, err := sys.MmapOpen(path)
	if err != nil {
		return "", err
	}
	defer m.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, io.NewSectionReader(m, 0, int64(m.Len()))); err != nil {
		return "", fmt.Errorf("hash %q: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum128().Bytes()), nil
}

// HashBytes returns the hex xxh3-128 digest of data.
func HashBytes(data []byte) string {
	sum := xxh3.Hash128(data).Bytes()
	return fmt.Sprintf("%x", sum)
}
