package config

import (
	"os"
	"path/filepath"
)

const (
	defaultVendorDir  = "Claude"
	defaultConfigName = "claude_desktop_config.json"
)

// DefaultPath returns the host application's per-user config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, defaultVendorDir, defaultConfigName), nil
}
