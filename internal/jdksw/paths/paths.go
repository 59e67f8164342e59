package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Directory and file name constants for jdksw state.
const (
	AppDirName     = "jdksw"
	ConfigFileName = "configuration.toml"
	PathFileName   = "path"
	BackupDirName  = "backups"
	LogFileName    = "jdksw.log"
)

// PathBuilder resolves where jdksw keeps its files.
type PathBuilder struct {
	configHome string
	stateHome  string
}

// New creates a PathBuilder rooted at the given config and state homes.
func New(configHome, stateHome string) *PathBuilder {
	return &PathBuilder{configHome: configHome, stateHome: stateHome}
}

// Default creates a PathBuilder from the XDG base directories.
func Default() *PathBuilder {
	return New(xdg.ConfigHome, xdg.StateHome)
}

// ConfigDir returns the directory holding the configuration document.
func (p *PathBuilder) ConfigDir() string {
	return filepath.Join(p.configHome, AppDirName)
}

// ConfigFile returns the configuration document path.
func (p *PathBuilder) ConfigFile() string {
	return filepath.Join(p.ConfigDir(), ConfigFileName)
}

// StateDir returns the directory for mutable state.
func (p *PathBuilder) StateDir() string {
	return filepath.Join(p.stateHome, AppDirName)
}

// PathFile returns the file standing in for the search path on hosts
// without a registry.
func (p *PathBuilder) PathFile() string {
	return filepath.Join(p.StateDir(), PathFileName)
}

// BackupDir returns where archived snapshots are kept.
func (p *PathBuilder) BackupDir() string {
	return filepath.Join(p.StateDir(), BackupDirName)
}

// LogFile returns the log file path.
func (p *PathBuilder) LogFile() string {
	return filepath.Join(p.StateDir(), LogFileName)
}
