package config

import (
	"os"
	"path/filepath"
)

// BaseDir returns the tasklog state directory (~/.config/tasklog). It holds
// the config file, the counter state file, and the lock file. It is a
// variable so tests can point it at a temporary directory.
var BaseDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tasklog"), nil
}

// ConfigPath returns the path of the YAML config file.
func ConfigPath() (string, error) {
	dir, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// StatePath returns the path of the tag counter state file.
func StatePath() (string, error) {
	dir, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.yaml"), nil
}

// LockPath returns the path of the advisory lock file shared by all
// processes that mutate the log.
func LockPath() (string, error) {
	dir, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lock"), nil
}
