package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/keshon/wit/internal/fs"
)

func TestOSFS_Open(t *testing.T) {
	called := false
	osfs := &fs.OSFS{}

	h := fs.CurrentHooks()
	h.Open = func(path string) (*os.File, error) {
		called = true
		if path != "abc.txt" {
			t.Fatalf("expected path abc.txt, got %s", path)
		}
		return nil, errors.New("open-error")
	}
	defer fs.SetHooks(h)()

	_, err := osfs.Open("abc.txt")
	if !called {
		t.Fatal("hook not called")
	}
	if err == nil || err.Error() != "open-error" {
		t.Fatalf("expected open-error, got %v", err)
	}
}

func TestOSFS_ReadFile(t *testing.T) {
	called := false
	osfs := &fs.OSFS{}

	h := fs.CurrentHooks()
	h.ReadFile = func(path string) ([]byte, error) {
		called = true
		return []byte("hello"), nil
	}
	defer fs.SetHooks(h)()

	out, err := osfs.ReadFile("x")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("readFile hook not called")
	}
	if string(out) != "hello" {
		t.Fatalf("expected hello, got %s", out)
	}
}

func TestOSFS_WriteFile(t *testing.T) {
	called := false
	osfs := &fs.OSFS{}

	h := fs.CurrentHooks()
	h.WriteFile = func(path string, data []byte, perm os.FileMode) error {
		called = true
		if path != "aaa" || string(data) != "bbb" || perm != 0o644 {
			t.Fatalf("unexpected write args")
		}
		return nil
	}
	defer fs.SetHooks(h)()

	if err := osfs.WriteFile("aaa", []byte("bbb"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("writeFile hook not called")
	}
}

func TestOSFS_Rename(t *testing.T) {
	called := false
	osfs := &fs.OSFS{}

	h := fs.CurrentHooks()
	h.Rename = func(old, new string) error {
		called = true
		if old != "a" || new != "b" {
			t.Fatalf("unexpected rename args")
		}
		return nil
	}
	defer fs.SetHooks(h)()

	if err := osfs.Rename("a", "b"); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("rename hook not called")
	}
}

func TestOSFS_CreateTempFile(t *testing.T) {
	dir := t.TempDir()
	osfs := &fs.OSFS{}

	wc, name, err := osfs.CreateTempFile(dir, "tmp-*")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wc.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if err := wc.Close(); err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(name) != dir {
		t.Fatalf("temp file %q not in %q", name, dir)
	}
	data, err := os.ReadFile(name)
	if err != nil || string(data) != "abc" {
		t.Fatalf("unexpected temp content %q (%v)", data, err)
	}
}

func TestOSFS_CreateTempFileError(t *testing.T) {
	osfs := &fs.OSFS{}

	h := fs.CurrentHooks()
	h.CreateTemp = func(dir, pattern string) (*os.File, error) {
		return nil, errors.New("tmp-failed")
	}
	defer fs.SetHooks(h)()

	_, _, err := osfs.CreateTempFile("tmp", "x*")
	if err == nil || err.Error() != "tmp-failed" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOSFS_IsDirAndExists(t *testing.T) {
	tmp := t.TempDir()
	tmpFile := filepath.Join(tmp, "x")
	os.WriteFile(tmpFile, []byte("1"), 0o644)

	osfs := &fs.OSFS{}
	if !osfs.IsDir(tmp) {
		t.Fatalf("expected %s to be a dir", tmp)
	}
	if !osfs.Exists(tmpFile) {
		t.Fatalf("expected file to exist")
	}
	if osfs.Exists(filepath.Join(tmp, "missing")) {
		t.Fatalf("unexpected exists")
	}
}

func TestOSFS_Digest(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a")
	empty := filepath.Join(tmp, "empty")
	os.WriteFile(a, []byte("content"), 0o644)
	os.WriteFile(empty, nil, 0o644)

	osfs := &fs.OSFS{}
	got, err := osfs.Digest(a)
	if err != nil {
		t.Fatal(err)
	}
	if got != fs.HashBytes([]byte("content")) {
		t.Fatalf("digest mismatch: %s", got)
	}

	gotEmpty, err := osfs.Digest(empty)
	if err != nil {
		t.Fatal(err)
	}
	if gotEmpty != fs.HashBytes(nil) {
		t.Fatalf("empty digest mismatch: %s", gotEmpty)
	}

	if _, err := osfs.Digest(filepath.Join(tmp, "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOSFS_DigestStreamsLargeFiles(t *testing.T) {
	tmp := t.TempDir()
	fsys := fs.NewOSFS()

	// sizes around the hasher's internal block boundaries
	for _, size := range []int{1, 240, 1024, 1025, 3<<20 + 7} {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i*31 + i>>8)
		}
		p := filepath.Join(tmp, "f")
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := fsys.Digest(p)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if want := fs.HashBytes(data); got != want {
			t.Fatalf("size %d: digest %s, want %s", size, got, want)
		}
	}
}
