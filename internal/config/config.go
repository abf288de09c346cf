package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.stockterm)
	ConfigDir string

	// SettingsFile is the persisted user settings file
	SettingsFile string

	// KeybindsFile is the optional keybinding override file
	KeybindsFile string

	// TickersFile is the known-symbol catalog consumed by the open prompt
	TickersFile string

	// IndicatorsDir holds indicator definition files for the settings menu
	IndicatorsDir string

	// DatabasePath is the sqlite database for the fetch journal
	DatabasePath string
)

// Initialize sets up the configuration directory and global paths. baseDir
// overrides the default ~/.stockterm when non-empty.
func Initialize(baseDir string) error {
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".stockterm")
	}

	ConfigDir = baseDir
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	TickersFile = filepath.Join(ConfigDir, "top-tickers.csv")
	IndicatorsDir = filepath.Join(ConfigDir, "indicators")
	DatabasePath = filepath.Join(ConfigDir, "stockterm.db")

	for _, dir := range []string{ConfigDir, IndicatorsDir} {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
