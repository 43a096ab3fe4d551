package paths

import (
	"os"
	"path/filepath"
)

const (
	appDirName = "unilang"
	rcFileName = ".unilangrc"

	// EnvConfigFile overrides the rc file location.
	EnvConfigFile = "UNILANG_CONFIG"
)

// AppDataDir returns the application data directory for the history
// database and the log file, creating it if needed.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)
	return path
}

// ConfigFilePath returns the rc file path, ~/.unilangrc unless
// UNILANG_CONFIG is set.
func ConfigFilePath() (string, error) {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return filepath.Clean(p), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, rcFileName), nil
}

// LogFilePath returns the path to the application log file inside
// AppDataDir.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "unilang.log")
}

// HistoryFilePath returns the default history database path inside
// AppDataDir.
func HistoryFilePath() string {
	return filepath.Join(AppDataDir(), "history.db")
}
