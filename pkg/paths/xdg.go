// Package paths provides XDG-compliant path resolution for icdeck.
//
// Resolution order:
// 1. ICDECK_HOME (portable root) → $ICDECK_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/icdeck
// 3. Platform defaults → ~/.config/icdeck, ~/.local/state/icdeck
//
// While a project session is active HOME points into the project, so the
// user's real home is taken from OLDHOME when it is set.
package paths

import (
	"os"
	"path/filepath"
)

const appName = "icdeck"

// UserHome returns the user's real home directory, looking through an
// active project session.
func UserHome() string {
	if old := os.Getenv("OLDHOME"); old != "" {
		return old
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return homeDir
	}
	return ""
}

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if root := os.Getenv("ICDECK_HOME"); root != "" {
		return filepath.Join(root, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir := UserHome(); homeDir != "" {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if root := os.Getenv("ICDECK_HOME"); root != "" {
		return filepath.Join(root, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir := UserHome(); homeDir != "" {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the icdeck configuration directory.
// Used for the shared projects file.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// StateDir returns the icdeck state directory.
// Used for log files.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// LogDir returns the directory log files are written to.
func LogDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}
