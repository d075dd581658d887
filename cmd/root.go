package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/slatepad/slate/internal/app"
	"github.com/slatepad/slate/internal/assist"
	"github.com/slatepad/slate/internal/config"
	"github.com/slatepad/slate/internal/editor"
	"github.com/slatepad/slate/internal/log"
	"github.com/slatepad/slate/internal/syntax"
	"github.com/slatepad/slate/internal/tracing"
	"github.com/slatepad/slate/internal/ui/editorview"
	"github.com/slatepad/slate/internal/ui/styles"
	"github.com/slatepad/slate/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// the Bubble Tea program starts, so the OSC 11 response cannot race
	// with the input loop and show up as garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "slate [file]",
	Short:   "A terminal text editor with incremental syntax highlighting",
	Long:    `A terminal text editor that highlights source code as you type, with debounced background passes and viewport-only highlighting for large files.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/slate/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log to .slate/debug.log")
	rootCmd.Flags().Bool("trace", false,
		"emit highlight pass traces")
	rootCmd.Flags().String("language", "",
		"override language detection for the opened file")
	rootCmd.Flags().String("large-file-mode", "",
		"viewport-only highlighting: auto, on, or off")

	_ = viper.BindPFlag("tracing.enabled", rootCmd.Flags().Lookup("trace"))
	_ = viper.BindPFlag("editor.large_file_mode", rootCmd.Flags().Lookup("large-file-mode"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.large_file_threshold", defaults.Editor.LargeFileThreshold)
	viper.SetDefault("editor.large_file_mode", defaults.Editor.LargeFileMode)
	viper.SetDefault("editor.refresh_debounce_ms", defaults.Editor.RefreshDebounceMs)
	viper.SetDefault("editor.highlight_debounce_ms", defaults.Editor.HighlightDebounceMs)
	viper.SetDefault("editor.drain_interval_ms", defaults.Editor.DrainIntervalMs)
	viper.SetDefault("editor.tab_width", defaults.Editor.TabWidth)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("assist.timeout_sec", defaults.Assist.TimeoutSec)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .slate/config.yaml (current directory)
		// 2. ~/.config/slate/config.yaml (user config)
		if _, err := os.Stat(".slate/config.yaml"); err == nil {
			viper.SetConfigFile(".slate/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "slate"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".slate/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If the write fails, continue with defaults only.
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if os.Getenv("SLATE_DEBUG") != "" {
		debug = true
	}
	if debug {
		cleanup, err := log.Init(".slate/debug.log")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Exporter:    cfg.Tracing.Exporter,
		FilePath:    cfg.Tracing.FilePath,
		SampleRate:  cfg.Tracing.SampleRate,
		ServiceName: "slate",
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	session := editor.New(cfg.Editor, provider.Tracer())

	path := ""
	content := ""
	language := syntax.PlainText
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		content = string(data)
		language = syntax.LanguageForPath(path)
	}
	if override, _ := cmd.Flags().GetString("language"); override != "" {
		language = override
	}

	doc, err := session.OpenDocument("", language, content)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}

	var assistMgr *assist.Manager
	if len(cfg.Assist.Command) > 0 {
		timeout := time.Duration(cfg.Assist.TimeoutSec) * time.Second
		assistMgr = assist.NewManager(
			assist.CommandProvider{Command: cfg.Assist.Command},
			session.Bridge(), timeout)
	}

	var watch *watcher.Watcher
	if cfgPath := viper.ConfigFileUsed(); cfgPath != "" {
		watch, err = watcher.New(watcher.DefaultConfig(cfgPath))
		if err != nil {
			log.ErrorErr(log.CatWatcher, "config watcher unavailable", err)
		} else if err := watch.Start(); err != nil {
			log.ErrorErr(log.CatWatcher, "config watcher failed to start", err)
			watch = nil
		}
	}

	cat := styles.NewCatalogue(cfg.Theme)
	view := editorview.New(session, doc.ID(), path, cat, cfg.Editor.TabWidth)

	model := app.New(app.Options{
		Config:  cfg,
		Session: session,
		Assist:  assistMgr,
		Watcher: watch,
		Reload:  reloadConfig,
		View:    view,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// reloadConfig re-reads the config file the watcher saw change.
func reloadConfig() (config.Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, err
	}
	var fresh config.Config
	if err := viper.Unmarshal(&fresh); err != nil {
		return config.Config{}, err
	}
	if err := fresh.Validate(); err != nil {
		return config.Config{}, err
	}
	return fresh, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
