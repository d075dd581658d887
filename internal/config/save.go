package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type errBadLargeFileMode string

func (e errBadLargeFileMode) Error() string {
	return fmt.Sprintf("invalid large_file_mode %q (want auto, on or off)", string(e))
}

// fileConfig mirrors Config with yaml tags for writing the default file.
type fileConfig struct {
	Editor struct {
		LargeFileThreshold  int    `yaml:"large_file_threshold"`
		LargeFileMode       string `yaml:"large_file_mode"`
		RefreshDebounceMs   int    `yaml:"refresh_debounce_ms"`
		HighlightDebounceMs int    `yaml:"highlight_debounce_ms"`
		DrainIntervalMs     int    `yaml:"drain_interval_ms"`
		TabWidth            int    `yaml:"tab_width"`
	} `yaml:"editor"`
	Theme struct {
		Colors map[string]string `yaml:"colors"`
	} `yaml:"theme"`
	Tracing struct {
		Enabled    bool    `yaml:"enabled"`
		Exporter   string  `yaml:"exporter"`
		FilePath   string  `yaml:"file_path"`
		SampleRate float64 `yaml:"sample_rate"`
	} `yaml:"tracing"`
	Assist struct {
		Command    []string `yaml:"command"`
		TimeoutSec int      `yaml:"timeout_sec"`
	} `yaml:"assist"`
}

// WriteDefaultConfig writes the default configuration to path, creating
// parent directories as needed. Used on first run when no config exists.
func WriteDefaultConfig(path string) error {
	defaults := Defaults()

	var fc fileConfig
	fc.Editor.LargeFileThreshold = defaults.Editor.LargeFileThreshold
	fc.Editor.LargeFileMode = defaults.Editor.LargeFileMode
	fc.Editor.RefreshDebounceMs = defaults.Editor.RefreshDebounceMs
	fc.Editor.HighlightDebounceMs = defaults.Editor.HighlightDebounceMs
	fc.Editor.DrainIntervalMs = defaults.Editor.DrainIntervalMs
	fc.Editor.TabWidth = defaults.Editor.TabWidth
	fc.Theme.Colors = defaults.Theme.Colors
	fc.Tracing.Enabled = defaults.Tracing.Enabled
	fc.Tracing.Exporter = defaults.Tracing.Exporter
	fc.Tracing.FilePath = defaults.Tracing.FilePath
	fc.Tracing.SampleRate = defaults.Tracing.SampleRate
	fc.Assist.Command = defaults.Assist.Command
	fc.Assist.TimeoutSec = defaults.Assist.TimeoutSec

	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // config file, not a secret
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
