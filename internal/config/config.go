package config

import (
	"os"
	"path/filepath"
)

// IsDev turns on debug logging and argument tracing.
var IsDev = os.Getenv("WIT_DEBUG") != ""

const (
	RepoDir        = ".wit"
	ImagesDir      = "images"
	StagingDir     = "staging_area"
	ReferencesFile = "references.txt"
	ActivatedFile  = "activated.txt"
	SettingsFile   = "config.json"
	IgnoreFile     = ".witignore"
)

const (
	DefaultBranch = "master"
	HeadRef       = "HEAD"

	// NoneRef marks an absent commit in persisted records.
	NoneRef = "None"
)

const (
	// CommitIDLength is the width of a commit id in hex characters.
	CommitIDLength = 32

	// DateLayout is the persisted commit timestamp format.
	DateLayout = "Mon Jan 02 15:04:05 2006 -0700"

	DefaultTimezone = "+0300"
)

// DefaultIgnoredFiles are never tracked, whatever .witignore says.
var DefaultIgnoredFiles = []string{RepoDir}

// RepoConfig resolves repository paths for a working tree.
type RepoConfig struct {
	WorkingTreeDir string // user files
	RepoDir        string // WorkingTreeDir/.wit
	Settings       Settings
}

// NewRepoConfig returns the configuration for the working tree at root.
func NewRepoConfig(root string) *RepoConfig {
	return &RepoConfig{
		WorkingTreeDir: root,
		RepoDir:        filepath.Join(root, RepoDir),
		Settings:       DefaultSettings(),
	}
}

func (c *RepoConfig) ImagesDir() string      { return filepath.Join(c.RepoDir, ImagesDir) }
func (c *RepoConfig) StagingDir() string     { return filepath.Join(c.RepoDir, StagingDir) }
func (c *RepoConfig) ReferencesFile() string { return filepath.Join(c.RepoDir, ReferencesFile) }
func (c *RepoConfig) ActivatedFile() string  { return filepath.Join(c.RepoDir, ActivatedFile) }
func (c *RepoConfig) SettingsFile() string   { return filepath.Join(c.RepoDir, SettingsFile) }
func (c *RepoConfig) IgnoreFile() string     { return filepath.Join(c.WorkingTreeDir, IgnoreFile) }
