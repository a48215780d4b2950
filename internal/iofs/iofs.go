// Package iofs ensures the on-disk directories and default config file a
// gntaxdb CLI invocation needs exist before the command runs.
package iofs

import (
	_ "embed"
	"os"

	"github.com/opentreeoflife/gntaxdb/pkg/config"
)

//go:embed gntaxdb.yaml
var ConfigYAML string

// EnsureDirs creates the config, cache, and log directories under homeDir
// if they do not already exist.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded default gntaxdb.yaml to the config
// directory if no config file exists there yet.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
