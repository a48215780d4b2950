package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gntaxdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gntaxdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gntaxdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gntaxdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the gntaxdb.yaml file.
// Returns ~/.config/gntaxdb/gntaxdb.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "gntaxdb.yaml")
}

// JournalFilePath returns the default path for the incremental-trie
// SQLite journal.
// Returns ~/.cache/gntaxdb/incremental.db by default.
func JournalFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "incremental.db")
}
