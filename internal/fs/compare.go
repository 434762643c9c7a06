package fs

import "fmt"

// Same reports whether a and b hold the same file. Two checks run and both
// must agree: a shallow one that trusts matching size and modification time
// before falling back to content, and a deep one that always compares
// content digests. A missing b counts as different.
func Same(fsys FS, a, b string) (bool, error) {
	ai, err := fsys.Stat(a)
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", a, err)
	}
	bi, err := fsys.Stat(b)
	if err != nil {
		if fsys.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %q: %w", b, err)
	}
	if ai.IsDir() != bi.IsDir() {
		return false, nil
	}

	deep, err := sameContent(fsys, a, b)
	if err != nil {
		return false, err
	}

	shallow := ai.Size() == bi.Size() && ai.ModTime().Equal(bi.ModTime())
	if !shallow {
		shallow = ai.Size() == bi.Size() && deep
	}

	return shallow && deep, nil
}

func sameContent(fsys FS, a, b string) (bool, error) {
	da, err := fsys.Digest(a)
	if err != nil {
		return false, fmt.Errorf("digest %q: %w", a, err)
	}
	db, err := fsys.Digest(b)
	if err != nil {
		return false, fmt.Errorf("digest %q: %w", b, err)
	}
	return da == db, nil
}
