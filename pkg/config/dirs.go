package config

import (
	"os"
	"path/filepath"
)

// DataDir resolves the directory for logs and runtime state:
// $TERMPULSE_DATA when set, else $XDG_DATA_HOME/termpulse, else
// ~/.local/share/termpulse.
func DataDir() string {
	if v := os.Getenv("TERMPULSE_DATA"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(xdgDataHome(home), "termpulse")
}

// ConfigDir resolves the configuration directory: $TERMPULSE_CONFIG
// when set, else $XDG_CONFIG_HOME/termpulse, else ~/.config/termpulse.
func ConfigDir() string {
	if v := os.Getenv("TERMPULSE_CONFIG"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(xdgConfigHome(home), "termpulse")
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgDataHome returns XDG_DATA_HOME or ~/.local/share as fallback.
func xdgDataHome(home string) string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "share")
}
