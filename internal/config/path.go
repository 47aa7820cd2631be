// Package config loads ledger configuration through viper and resolves the
// on-disk locations it refers to.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config and data directories.
const AppName = "ledger"

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}

// ConfigDir is where config.yaml is looked up: $XDG_CONFIG_HOME/ledger or
// ~/.config/ledger.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	return ExpandPath(filepath.Join("~", ".config", AppName))
}

// DataDir holds the database and its checkpoints: $XDG_DATA_HOME/ledger or
// ~/.local/share/ledger.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	return ExpandPath(filepath.Join("~", ".local", "share", AppName))
}

// DefaultDatabasePath is the database file used when none is configured.
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), AppName+".db")
}
