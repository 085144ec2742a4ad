package config

import (
	"os"
	"path/filepath"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.taskrank).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskrank"), nil
}

// ProjectConfigDir is the per-project directory searched before $HOME.
const ProjectConfigDir = ".taskrank"

// CrashLogBase returns the directory crash logs are written under.
// Resolution order (first match wins):
// 1. Local project directory: .taskrank (if exists)
// 2. XDG_STATE_HOME/taskrank (if XDG_STATE_HOME is set)
// 3. Global fallback: ~/.taskrank
func CrashLogBase() string {
	if info, err := os.Stat(ProjectConfigDir); err == nil && info.IsDir() {
		return ProjectConfigDir
	}

	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskrank")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return ProjectConfigDir
	}
	return dir
}
