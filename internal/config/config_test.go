package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, 500000, cfg.Editor.LargeFileThreshold)
	require.Equal(t, "auto", cfg.Editor.LargeFileMode)
	require.Equal(t, 200, cfg.Editor.RefreshDebounceMs)
	require.Equal(t, 250, cfg.Editor.HighlightDebounceMs)
	require.Equal(t, 50, cfg.Editor.DrainIntervalMs)
	require.NoError(t, cfg.Validate())
}

func TestValidate_LargeFileMode(t *testing.T) {
	for _, mode := range []string{"", "auto", "on", "off"} {
		cfg := Defaults()
		cfg.Editor.LargeFileMode = mode
		require.NoError(t, cfg.Validate(), "mode %q", mode)
	}

	cfg := Defaults()
	cfg.Editor.LargeFileMode = "sometimes"
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "sometimes")
}

func TestDefaultColors_CoverRegistryTags(t *testing.T) {
	colors := DefaultColors()
	for _, tag := range []string{"keyword", "string", "comment", "number", "function"} {
		require.Contains(t, colors, tag)
		require.Regexp(t, `^#[0-9A-Fa-f]{6}$`, colors[tag])
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc fileConfig
	require.NoError(t, yaml.Unmarshal(data, &fc))
	require.Equal(t, 500000, fc.Editor.LargeFileThreshold)
	require.Equal(t, "auto", fc.Editor.LargeFileMode)
	require.NotEmpty(t, fc.Theme.Colors)
}
