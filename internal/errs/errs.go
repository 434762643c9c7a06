// Package errs defines the error kinds reported by repository operations.
// Callers match them with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryNotFound = errors.New("not a wit repository (or any of the parent directories)")
	ErrCheckoutBlocked    = errors.New("checkout blocked: uncommitted or unstaged changes present")
	ErrMergeBlocked       = errors.New("merge blocked: uncommitted or unstaged changes present")
	ErrNoSuchBranch       = errors.New("no such branch")
	ErrDuplicateBranch    = errors.New("branch already exists")
	ErrInvalidBranchName  = errors.New("invalid branch name")
	ErrPathNotFound       = errors.New("path not found")
	ErrAlreadyUpToDate    = errors.New("already up to date")
	ErrNoCommits          = errors.New("no commits yet")
	ErrStorageIO          = errors.New("storage i/o error")
)

// StorageError wraps a filesystem or parse failure on repository storage.
// It matches ErrStorageIO as well as the wrapped cause.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorageIO }

// Storage wraps err as a StorageError. A nil err stays nil and an existing
// StorageError is returned unchanged.
func Storage(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Path: path, Err: err}
}
