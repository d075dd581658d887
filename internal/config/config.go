// Package config provides configuration types and defaults for slate.
package config

// Config holds all configuration options for slate.
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Assist  AssistConfig  `mapstructure:"assist"`
}

// EditorConfig holds the editing and scheduling knobs.
type EditorConfig struct {
	// LargeFileThreshold is the content size in characters above which
	// highlighting is restricted to the visible viewport.
	LargeFileThreshold int `mapstructure:"large_file_threshold"`

	// LargeFileMode forces viewport-only highlighting on or off.
	// Valid values: "auto" (threshold decides), "on", "off".
	LargeFileMode string `mapstructure:"large_file_mode"`

	// RefreshDebounceMs is the quiet period before light UI refresh
	// (gutter, status) after an edit.
	RefreshDebounceMs int `mapstructure:"refresh_debounce_ms"`

	// HighlightDebounceMs is the quiet period before a highlight pass.
	HighlightDebounceMs int `mapstructure:"highlight_debounce_ms"`

	// DrainIntervalMs is the cadence at which the owning loop drains the
	// dispatch bridge.
	DrainIntervalMs int `mapstructure:"drain_interval_ms"`

	// TabWidth is the rendered width of a tab character.
	TabWidth int `mapstructure:"tab_width"`
}

// ThemeConfig holds the style catalogue colors, keyed by style tag.
// Values are hex colors; missing tags fall back to the defaults.
type ThemeConfig struct {
	Colors map[string]string `mapstructure:"colors"`
}

// TracingConfig configures the optional tracing subsystem.
type TracingConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	Exporter string  `mapstructure:"exporter"` // "stdout", "file", "none"
	FilePath string  `mapstructure:"file_path"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

// AssistConfig configures the background text-transform provider.
type AssistConfig struct {
	// Command is the local command run with the prompt on stdin. Empty
	// disables assists.
	Command []string `mapstructure:"command"`

	// TimeoutSec bounds a single assist invocation.
	TimeoutSec int `mapstructure:"timeout_sec"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			LargeFileThreshold:  500000,
			LargeFileMode:       "auto",
			RefreshDebounceMs:   200,
			HighlightDebounceMs: 250,
			DrainIntervalMs:     50,
			TabWidth:            4,
		},
		Theme: ThemeConfig{
			Colors: DefaultColors(),
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			SampleRate: 1.0,
		},
		Assist: AssistConfig{
			TimeoutSec: 60,
		},
	}
}

// DefaultColors returns the default style catalogue, keyed by style tag.
func DefaultColors() map[string]string {
	return map[string]string{
		"keyword":      "#C678DD",
		"string":       "#98C379",
		"comment":      "#5C6370",
		"number":       "#D19A66",
		"function":     "#61AFEF",
		"class":        "#E5C07B",
		"decorator":    "#E06C75",
		"annotation":   "#E06C75",
		"builtin":      "#56B6C2",
		"constant":     "#D19A66",
		"variable":     "#E06C75",
		"operator":     "#56B6C2",
		"preprocessor": "#E06C75",
		"macro":        "#56B6C2",
		"lifetime":     "#E5C07B",
		"type":         "#E5C07B",
		"tag":          "#E06C75",
		"attribute":    "#D19A66",
		"selector":     "#61AFEF",
		"property":     "#C678DD",
		"value":        "#98C379",
		"key":          "#61AFEF",
		"header":       "#61AFEF",
		"bold":         "#E5C07B",
		"italic":       "#C678DD",
		"code":         "#98C379",
		"link":         "#56B6C2",
		"list":         "#C678DD",
		"entity":       "#D19A66",
	}
}

// Validate checks enum-valued fields.
func (c Config) Validate() error {
	switch c.Editor.LargeFileMode {
	case "", "auto", "on", "off":
	default:
		return errBadLargeFileMode(c.Editor.LargeFileMode)
	}
	return nil
}
