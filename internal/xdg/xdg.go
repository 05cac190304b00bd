// Package xdg resolves XDG Base Directory paths for tablepad.
//
// Configuration lives under $XDG_CONFIG_HOME/tablepad and the diagnostic log under
// $XDG_STATE_HOME/tablepad. Both fall back to the conventional locations below the
// user's home directory when the variables are unset.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "tablepad"

// ConfigDir returns the XDG config directory for tablepad.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/tablepad when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for tablepad.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/tablepad when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(env string, homeRel string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
