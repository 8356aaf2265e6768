package config

import (
	"os"
	"path/filepath"
)

// appDirName is the directory created under the platform config and data roots
const appDirName = "sttcompanion"

// DefaultDataDir returns <user-config>/sttcompanion, or a relative directory
// when the platform offers no user config root
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(dir, appDirName)
}
