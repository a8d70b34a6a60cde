package config

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the directory holding settings and history
const EnvHome = "MAMBAPROBE_HOME"

// GetHome returns $MAMBAPROBE_HOME or ~/.mambaprobe
func GetHome() string {
	home := os.Getenv(EnvHome)
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".mambaprobe"
		}
		return filepath.Join(homeDir, ".mambaprobe")
	}
	return ExpandPath(home)
}

// GetDBPath returns $MAMBAPROBE_HOME/history.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "history.db")
}

// GetSettingsPath returns $MAMBAPROBE_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
