package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/harunnryd/notedesk/internal/config"
)

// ResolveProfileRootPath resolves the configured profile root.
// If empty, it falls back to ~/.notedesk/profiles.
func ResolveProfileRootPath(profileRootPath string) (string, error) {
	if trimmed := strings.TrimSpace(profileRootPath); trimmed != "" {
		return config.ExpandPath(trimmed)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".notedesk", "profiles"), nil
}

// GetProfilePath returns the base path for a profile.
func GetProfilePath(profile string, profileRootPath string) (string, error) {
	root, err := ResolveProfileRootPath(profileRootPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, profile), nil
}

// GetLockPath returns the lock file path for a profile.
func GetLockPath(profile string, profileRootPath string) (string, error) {
	base, err := GetProfilePath(profile, profileRootPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, lockFileName), nil
}
