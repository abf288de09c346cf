package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the persisted user configuration. Saved from the settings
// menu's close action so the next session starts where the last one ended.
type Settings struct {
	DefaultSymbol string `yaml:"default_symbol"`
	Range         string `yaml:"range"`
	Interval      string `yaml:"interval"`
	ChartType     string `yaml:"chart_type"`
	ViewMode      string `yaml:"view_mode"`
	TimeFormat    string `yaml:"time_format"`
	ShowHeader    bool   `yaml:"show_header"`

	// FetcherCommand is the external data/chart program, argv style.
	FetcherCommand []string `yaml:"fetcher_command"`

	TimeoutSeconds     int `yaml:"timeout_seconds"`
	CacheCapacity      int `yaml:"cache_capacity"`
	SettingsDebounceMs int `yaml:"settings_debounce_ms"`
	ResizeDebounceMs   int `yaml:"resize_debounce_ms"`
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		DefaultSymbol:      "AAPL",
		Range:              "1d",
		Interval:           "1m",
		ChartType:          "line",
		ViewMode:           "percent",
		TimeFormat:         "12h",
		ShowHeader:         true,
		FetcherCommand:     []string{"python3", "fetch_stock.py"},
		TimeoutSeconds:     30,
		CacheCapacity:      32,
		SettingsDebounceMs: 400,
		ResizeDebounceMs:   500,
	}
}

// LoadSettings reads the settings file, creating it with defaults on first
// run. Unknown or missing fields fall back to their defaults.
func LoadSettings() (Settings, error) {
	defaults := DefaultSettings()

	data, err := os.ReadFile(SettingsFile)
	if os.IsNotExist(err) {
		if werr := SaveSettings(defaults); werr != nil {
			return defaults, werr
		}
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("failed to read settings: %w", err)
	}

	s := defaults
	if err := yaml.Unmarshal(data, &s); err != nil {
		return defaults, fmt.Errorf("invalid settings file: %w", err)
	}
	s.fillZeroValues(defaults)
	return s, nil
}

// SaveSettings writes the settings file.
func SaveSettings(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(SettingsFile, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func (s *Settings) fillZeroValues(defaults Settings) {
	if s.DefaultSymbol == "" {
		s.DefaultSymbol = defaults.DefaultSymbol
	}
	if s.Range == "" {
		s.Range = defaults.Range
	}
	if s.Interval == "" {
		s.Interval = defaults.Interval
	}
	if s.ChartType == "" {
		s.ChartType = defaults.ChartType
	}
	if s.ViewMode == "" {
		s.ViewMode = defaults.ViewMode
	}
	if s.TimeFormat == "" {
		s.TimeFormat = defaults.TimeFormat
	}
	if len(s.FetcherCommand) == 0 {
		s.FetcherCommand = defaults.FetcherCommand
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if s.CacheCapacity <= 0 {
		s.CacheCapacity = defaults.CacheCapacity
	}
	if s.SettingsDebounceMs <= 0 {
		s.SettingsDebounceMs = defaults.SettingsDebounceMs
	}
	if s.ResizeDebounceMs <= 0 {
		s.ResizeDebounceMs = defaults.ResizeDebounceMs
	}
}
