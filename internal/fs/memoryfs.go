package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type memFile struct {
	data []byte
	mod  time.Time
}

// MemoryFS keeps a whole tree in memory. Every write stamps the file with
// the next tick of a logical clock, so modification times order writes.
type MemoryFS struct {
	files map[string]memFile
	dirs  map[string]struct{}
	clock time.Time
	temps int
}

func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string]memFile),
		dirs:  map[string]struct{}{"/": {}, ".": {}},
		clock: time.Unix(1_700_000_000, 0),
	}
}

func clean(p string) string {
	if p == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func (f *MemoryFS) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *MemoryFS) put(p string, data []byte) {
	f.files[p] = memFile{data: append([]byte(nil), data...), mod: f.tick()}
}

func (f *MemoryFS) requireDir(p string) error {
	if _, ok := f.dirs[clean(p)]; !ok {
		return fs.ErrNotExist
	}
	return nil
}

// under reports whether p is root itself or lies below it.
func under(p, root string) bool {
	return p == root || strings.HasPrefix(p, root+"/")
}

func (f *MemoryFS) Open(p string) (io.ReadSeekCloser, error) {
	file, ok := f.files[clean(p)]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return nopCloser{bytes.NewReader(file.data)}, nil
}

type nopCloser struct{ *bytes.Reader }

func (nopCloser) Close() error { return nil }

func (f *MemoryFS) ReadFile(p string) ([]byte, error) {
	file, ok := f.files[clean(p)]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return append([]byte(nil), file.data...), nil
}

// WriteFile requires the parent directory to exist, like os.WriteFile.
func (f *MemoryFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	p = clean(p)
	if dir := path.Dir(p); f.requireDir(dir) != nil {
		return fmt.Errorf("write %q: dir %q does not exist", p, dir)
	}
	if _, ok := f.dirs[p]; ok {
		return fmt.Errorf("write %q: is a directory", p)
	}
	f.put(p, data)
	return nil
}

func (f *MemoryFS) MkdirAll(p string, perm os.FileMode) error {
	p = clean(p)
	cur := ""
	if strings.HasPrefix(p, "/") {
		cur = "/"
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." {
			continue
		}
		cur = path.Join(cur, seg)
		if _, ok := f.files[cur]; ok {
			return fmt.Errorf("mkdir %q: not a directory", cur)
		}
		f.dirs[cur] = struct{}{}
	}
	return nil
}

// Remove deletes a file or an empty directory.
func (f *MemoryFS) Remove(p string) error {
	p = clean(p)
	if _, ok := f.files[p]; ok {
		delete(f.files, p)
		return nil
	}
	if _, ok := f.dirs[p]; !ok {
		return fs.ErrNotExist
	}
	for fp := range f.files {
		if under(fp, p) {
			return fmt.Errorf("remove %q: directory not empty", p)
		}
	}
	for dp := range f.dirs {
		if dp != p && under(dp, p) {
			return fmt.Errorf("remove %q: directory not empty", p)
		}
	}
	delete(f.dirs, p)
	return nil
}

// RemoveAll deletes p and everything below it. Missing paths are not an error.
func (f *MemoryFS) RemoveAll(p string) error {
	p = clean(p)
	for fp := range f.files {
		if under(fp, p) {
			delete(f.files, fp)
		}
	}
	for dp := range f.dirs {
		if under(dp, p) {
			delete(f.dirs, dp)
		}
	}
	return nil
}

// Rename moves a file, or a directory with everything below it.
func (f *MemoryFS) Rename(oldp, newp string) error {
	oldp, newp = clean(oldp), clean(newp)
	if f.requireDir(path.Dir(newp)) != nil {
		return fs.ErrNotExist
	}

	if file, ok := f.files[oldp]; ok {
		delete(f.files, oldp)
		f.files[newp] = file
		return nil
	}
	if _, ok := f.dirs[oldp]; !ok {
		return fs.ErrNotExist
	}

	moved := make(map[string]memFile)
	for fp, file := range f.files {
		if under(fp, oldp) {
			moved[newp+strings.TrimPrefix(fp, oldp)] = file
			delete(f.files, fp)
		}
	}
	for fp, file := range moved {
		f.files[fp] = file
	}
	var dirs []string
	for dp := range f.dirs {
		if under(dp, oldp) {
			dirs = append(dirs, dp)
			delete(f.dirs, dp)
		}
	}
	for _, dp := range dirs {
		f.dirs[newp+strings.TrimPrefix(dp, oldp)] = struct{}{}
	}
	return nil
}

func (f *MemoryFS) Stat(p string) (os.FileInfo, error) {
	p = clean(p)
	if file, ok := f.files[p]; ok {
		return &memInfo{name: path.Base(p), size: int64(len(file.data)), mod: file.mod}, nil
	}
	if _, ok := f.dirs[p]; ok {
		return &memInfo{name: path.Base(p), dir: true}, nil
	}
	return nil, fs.ErrNotExist
}

// ReadDir lists the direct children of p sorted by name.
func (f *MemoryFS) ReadDir(p string) ([]os.DirEntry, error) {
	p = clean(p)
	if _, ok := f.dirs[p]; !ok {
		return nil, fs.ErrNotExist
	}

	prefix := p + "/"
	switch p {
	case ".":
		prefix = ""
	case "/":
		prefix = "/"
	}

	seen := make(map[string]bool)
	var out []os.DirEntry
	child := func(full string) (string, bool) {
		if full == "/" || full == "." || !strings.HasPrefix(full, prefix) {
			return "", false
		}
		name, _, _ := strings.Cut(strings.TrimPrefix(full, prefix), "/")
		if name == "" || name == "." || seen[name] {
			return "", false
		}
		seen[name] = true
		return name, true
	}

	for dp := range f.dirs {
		if name, ok := child(dp); ok {
			out = append(out, memEntry{info: memInfo{name: name, dir: true}})
		}
	}
	for fp, file := range f.files {
		if name, ok := child(fp); ok {
			out = append(out, memEntry{info: memInfo{name: name, size: int64(len(file.data)), mod: file.mod}})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// CreateTempFile returns a writer whose content lands in the tree on Close.
func (f *MemoryFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	if err := f.requireDir(dir); err != nil {
		return nil, "", err
	}

	f.temps++
	name := strings.Replace(pattern, "*", fmt.Sprintf("%d", f.temps), 1)
	if name == pattern {
		name = fmt.Sprintf("%s-%d", pattern, f.temps)
	}
	tmp := path.Join(clean(dir), name)
	return &memWriter{onClose: func(data []byte) { f.put(tmp, data) }}, tmp, nil
}

type memWriter struct {
	buf     bytes.Buffer
	onClose func([]byte)
}

func (m *memWriter) Write(p []byte) (int, error) { return m.buf.Write(p) }

func (m *memWriter) Close() error {
	m.onClose(m.buf.Bytes())
	return nil
}

func (f *MemoryFS) IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }

func (f *MemoryFS) IsDir(p string) bool {
	_, ok := f.dirs[clean(p)]
	return ok
}

func (f *MemoryFS) Exists(p string) bool {
	p = clean(p)
	_, isFile := f.files[p]
	_, isDir := f.dirs[p]
	return isFile || isDir
}

func (f *MemoryFS) Digest(p string) (string, error) {
	file, ok := f.files[clean(p)]
	if !ok {
		return "", fs.ErrNotExist
	}
	return HashBytes(file.data), nil
}

type memInfo struct {
	name string
	size int64
	mod  time.Time
	dir  bool
}

func (i *memInfo) Name() string       { return i.name }
func (i *memInfo) Size() int64        { return i.size }
func (i *memInfo) ModTime() time.Time { return i.mod }
func (i *memInfo) IsDir() bool        { return i.dir }
func (i *memInfo) Sys() any           { return nil }
func (i *memInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}

type memEntry struct{ info memInfo }

func (e memEntry) Name() string               { return e.info.name }
func (e memEntry) IsDir() bool                { return e.info.dir }
func (e memEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e memEntry) Info() (os.FileInfo, error) { info := e.info; return &info, nil }
