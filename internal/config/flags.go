package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/marque/internal/logger"
)

// Flags holds values parsed from command-line flags. Pointer fields
// distinguish unset flags from zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	Version         *bool
	Theme           *string
	LogLevel        *string
	LogFilePath     *string
	ScrollOff       *int
	Label           *string
	Sidecar         *bool
	SystemClipboard *bool
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
}

// DefineFlags registers the command-line flags.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = flag.Bool("version", false, "Show version information and exit")
	f.Theme = flag.String("theme", "", "Theme to activate at startup - overrides config file")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file (use '-' for stderr) - overrides config file")
	f.ScrollOff = flag.Int("scrolloff", -1, "Lines of context above/below cursor - overrides config file")
	f.Label = flag.String("label", "", "Default highlight label - overrides config file")
	f.Sidecar = flag.Bool("sidecar", true, "Write highlight tokens to a sidecar .marks file on save")
	f.SystemClipboard = flag.Bool("system-clipboard", true, "Copy highlight tokens through the system clipboard")
	f.EnableTags = flag.String("log-tags", "", "Comma-separated list of log tags to enable")
	f.DisableTags = flag.String("log-disable-tags", "", "Comma-separated list of log tags to disable")
	f.EnablePkgs = flag.String("log-packages", "", "Comma-separated list of packages to log")
	f.DisablePkgs = flag.String("log-disable-packages", "", "Comma-separated list of packages to silence")
	f.EnableFiles = flag.String("log-files", "", "Comma-separated list of files to log")
	f.DisableFiles = flag.String("log-disable-files", "", "Comma-separated list of files to silence")
}

// ParseFlags parses the command line and returns the non-flag arguments
// (the document path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates cfg with values from flags that were actually set
// on the command line. flag.Visit only walks set flags.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	flag.Visit(func(fl *flag.Flag) {
		if verbose {
			logger.DebugTagf("config", "applying flag override: %s", fl.Name)
		}
		switch fl.Name {
		case "theme":
			if f.Theme != nil && *f.Theme != "" {
				cfg.Theme = *f.Theme
			}
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.LogFilePath = *f.LogFilePath
			}
		case "scrolloff":
			if f.ScrollOff != nil && *f.ScrollOff >= 0 {
				cfg.View.ScrollOff = *f.ScrollOff
			}
		case "label":
			if f.Label != nil && *f.Label != "" {
				cfg.Highlight.DefaultLabel = *f.Label
			}
		case "sidecar":
			if f.Sidecar != nil {
				cfg.Highlight.Sidecar = *f.Sidecar
			}
		case "system-clipboard":
			if f.SystemClipboard != nil {
				cfg.Highlight.SystemClipboard = *f.SystemClipboard
			}
		case "log-tags":
			if f.EnableTags != nil && *f.EnableTags != "" {
				cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
			}
		case "log-disable-tags":
			if f.DisableTags != nil && *f.DisableTags != "" {
				cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
			}
		case "log-packages":
			if f.EnablePkgs != nil && *f.EnablePkgs != "" {
				cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
			}
		case "log-disable-packages":
			if f.DisablePkgs != nil && *f.DisablePkgs != "" {
				cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
			}
		case "log-files":
			if f.EnableFiles != nil && *f.EnableFiles != "" {
				cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
			}
		case "log-disable-files":
			if f.DisableFiles != nil && *f.DisableFiles != "" {
				cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
			}
		}
	})
}

// splitCommaList splits a comma-separated flag value, trimming blanks.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
