// Package datadir provides constants and utilities for where tsk keeps its
// files.
package datadir

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// Name is the application directory name under the OS data and config
	// directories.
	Name = "tsk"

	// Dir is the name of the per-user state directory in the home directory.
	Dir = ".tsk"

	// DefaultTaskFile is the default task file name (inside the data directory).
	DefaultTaskFile = "tasks.json"

	// DefaultConfigFile is the config file name, both per user and per project.
	DefaultConfigFile = "tsk.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".tsk.toml"
)

// DataDir returns the directory holding the default task file:
//   - Linux/BSD: $XDG_DATA_HOME/tsk or ~/.local/share/tsk
//   - macOS: ~/Library/Application Support/tsk
//   - Windows: %LOCALAPPDATA%\tsk
//
// It falls back to ~/.tsk when none of these can be determined.
func DataDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, Name)
		}
	case "darwin":
		if home != "" {
			return filepath.Join(home, "Library", "Application Support", Name)
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, Name)
		}
		if home != "" {
			return filepath.Join(home, ".local", "share", Name)
		}
	}
	return DirPath(home)
}

// TaskPath returns the full path to the default task file.
func TaskPath() string {
	return filepath.Join(DataDir(), DefaultTaskFile)
}

// DirPath returns the full path to the .tsk directory within home.
func DirPath(home string) string {
	if home == "" {
		return Dir
	}
	return filepath.Join(home, Dir)
}

// UserConfigPath returns the path of the config file in the .tsk directory.
func UserConfigPath(home string) string {
	return filepath.Join(DirPath(home), DefaultConfigFile)
}

// ProjectConfigNames lists the project config file names in lookup order.
func ProjectConfigNames() []string {
	return []string{DefaultConfigFile, HiddenConfigFile}
}
