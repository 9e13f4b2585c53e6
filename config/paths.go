package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "toolgate"

// getConfigDir returns the configuration directory for toolgate.
func getConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appName)
}

// getDataDir returns the data directory for toolgate. Only settings
// backups are stored there.
// This follows XDG on Linux, Application Support on macOS, and LocalAppData on Windows.
func getDataDir() string {
	switch runtime.GOOS {
	case "linux":
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			return filepath.Join(xdgData, appName)
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)

	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", appName)

	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName)
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "AppData", "Local", appName)

	default:
		return getConfigDir()
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func EnsureDirectories() error {
	paths := ResolvePaths()

	for _, dir := range []string{paths.ConfigDir, paths.BackupsDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}
