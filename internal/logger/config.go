// Package logger provides the application's structured logging with
// tag, package and file based filtering on top of log/slog.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is where log output goes. "-" means stderr, empty means
	// discard, anything else is a file path opened for append.
	LogFilePath string `toml:"log_file"`

	// EnabledTags only logs messages carrying these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages carrying these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (if non-empty).
	// The package name is the immediate directory name ("session", "view").
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages from these base filenames (if non-empty).
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles drops messages from these base filenames.
	DisabledFiles []string `toml:"disabled_files"`

	// processed forms used by the filtering handler
	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig returns a Config with default values.
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// process parses the string level and converts filter lists into sets.
func (c *Config) process() {
	c.level = slog.LevelInfo
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		c.level = slog.LevelDebug
	case "info":
		c.level = slog.LevelInfo
	case "warn", "warning":
		c.level = slog.LevelWarn
	case "error", "err":
		c.level = slog.LevelError
	}

	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)
}

// sliceToSet lowercases entries for case-insensitive matching. A nil map
// means "no filter", which simplifies the checks in the handler.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
