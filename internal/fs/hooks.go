package fs

import (
	"os"

	"golang.org/x/exp/mmap"
)

// Hooks are the operating system calls OSFS goes through. Tests replace
// them with SetHooks to inject failures.
type Hooks struct {
	Open       func(string) (*os.File, error)
	ReadFile   func(string) ([]byte, error)
	WriteFile  func(string, []byte, os.FileMode) error
	Stat       func(string) (os.FileInfo, error)
	ReadDir    func(string) ([]os.DirEntry, error)
	Remove     func(string) error
	RemoveAll  func(string) error
	Rename     func(string, string) error
	CreateTemp func(string, string) (*os.File, error)
	MkdirAll   func(string, os.FileMode) error
	IsNotExist func(error) bool
	MmapOpen   func(string) (*mmap.ReaderAt, error)
}

// DefaultHooks returns the hooks backed by the os package.
func DefaultHooks() Hooks {
	return Hooks{
		Open:       os.Open,
		ReadFile:   os.ReadFile,
		WriteFile:  os.WriteFile,
		Stat:       os.Stat,
		ReadDir:    os.ReadDir,
		Remove:     os.Remove,
		RemoveAll:  os.RemoveAll,
		Rename:     os.Rename,
		CreateTemp: os.CreateTemp,
		MkdirAll:   os.MkdirAll,
		IsNotExist: os.IsNotExist,
		MmapOpen:   mmap.Open,
	}
}

var sys = DefaultHooks()

// CurrentHooks returns the hooks in effect.
func CurrentHooks() Hooks { return sys }

// SetHooks installs h and returns a func restoring the previous hooks.
// Start from CurrentHooks and replace single fields.
func SetHooks(h Hooks) (restore func()) {
	prev := sys
	sys = h
	return func() { sys = prev }
}
