// Package config loads application settings from defaults, the TOML config
// file and command-line flag overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/marque/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	// Theme names the theme to activate at startup; empty keeps the
	// built-in default.
	Theme     string          `toml:"theme"`
	Logger    logger.Config   `toml:"logger"`
	View      ViewConfig      `toml:"view"`
	Highlight HighlightConfig `toml:"highlight"`
}

// ViewConfig holds document pane settings.
type ViewConfig struct {
	ScrollOff       int `toml:"scroll_off"`
	StatusBarHeight int `toml:"status_bar_height"`
}

// HighlightConfig holds highlight toggle and persistence settings.
type HighlightConfig struct {
	// DefaultLabel is the label applied when toggling without naming one.
	DefaultLabel string `toml:"default_label"`
	// Labels is the cycle the label key rotates through.
	Labels []string `toml:"labels"`
	// Sidecar controls writing highlight tokens to a <doc>.marks file on save.
	Sidecar bool `toml:"sidecar"`
	// SystemClipboard routes copied tokens through the system clipboard.
	SystemClipboard bool `toml:"system_clipboard"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		View: ViewConfig{
			ScrollOff:       DefaultScrollOff,
			StatusBarHeight: StatusBarHeight,
		},
		Highlight: HighlightConfig{
			DefaultLabel:    DefaultHighlightLabel,
			Labels:          []string{"mark", "note", "urgent"},
			Sidecar:         true,
			SystemClipboard: SystemClipboard,
		},
	}
}

// loadFromFile loads configuration from a TOML file. A missing file is not
// an error; the metadata reports which keys the file actually defined.
func loadFromFile(filePath string, verbose bool) (*Config, toml.MetaData, error) {
	cfg := &Config{}
	var md toml.MetaData

	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return cfg, md, nil
	}
	if err != nil {
		return cfg, md, fmt.Errorf("checking config file %q: %w", filePath, err)
	}

	md, err = toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, md, fmt.Errorf("parsing config file %q: %w", filePath, err)
	}
	if len(md.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file %q: unrecognized keys: %v", filePath, md.Undecoded())
	}
	return cfg, md, nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.View.ScrollOff < 0 {
		c.View.ScrollOff = defaults.View.ScrollOff
	}
	if c.View.StatusBarHeight <= 0 {
		c.View.StatusBarHeight = defaults.View.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Highlight.DefaultLabel == "" {
		c.Highlight.DefaultLabel = defaults.Highlight.DefaultLabel
	}
	if len(c.Highlight.Labels) == 0 {
		c.Highlight.Labels = defaults.Highlight.Labels
	}
}

// LoadConfig merges defaults, the config file and flag overrides. It runs
// once; call it before logger.Init since nothing can be logged during it.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		verbose := false

		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			}
		}

		if effectivePath != "" {
			fileCfg, md, err := loadFromFile(effectivePath, verbose)
			if err != nil {
				loadErr = err
			} else {
				mergeFileConfig(cfg, fileCfg, md)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg, verbose)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// mergeFileConfig copies settings the file actually defined onto cfg.
// Booleans need the metadata check so an absent key cannot clobber a
// default that happens to be true.
func mergeFileConfig(cfg, fileCfg *Config, md toml.MetaData) {
	if fileCfg.Logger.LogLevel != "" || md.IsDefined("logger") {
		merged := fileCfg.Logger
		if merged.LogLevel == "" {
			merged.LogLevel = cfg.Logger.LogLevel
		}
		if !md.IsDefined("logger", "log_file") {
			merged.LogFilePath = cfg.Logger.LogFilePath
		}
		cfg.Logger = merged
	}

	if fileCfg.Theme != "" {
		cfg.Theme = fileCfg.Theme
	}

	if fileCfg.View.ScrollOff >= 0 && md.IsDefined("view", "scroll_off") {
		cfg.View.ScrollOff = fileCfg.View.ScrollOff
	}
	if fileCfg.View.StatusBarHeight > 0 {
		cfg.View.StatusBarHeight = fileCfg.View.StatusBarHeight
	}

	if fileCfg.Highlight.DefaultLabel != "" {
		cfg.Highlight.DefaultLabel = fileCfg.Highlight.DefaultLabel
	}
	if len(fileCfg.Highlight.Labels) > 0 {
		cfg.Highlight.Labels = fileCfg.Highlight.Labels
	}
	if md.IsDefined("highlight", "sidecar") {
		cfg.Highlight.Sidecar = fileCfg.Highlight.Sidecar
	}
	if md.IsDefined("highlight", "system_clipboard") {
		cfg.Highlight.SystemClipboard = fileCfg.Highlight.SystemClipboard
	}
}

// Get returns the loaded application configuration. Panics if LoadConfig
// wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
