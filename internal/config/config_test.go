package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTOML(t *testing.T, data string) (*Config, toml.MetaData) {
	t.Helper()
	fileCfg := &Config{}
	md, err := toml.Decode(data, fileCfg)
	require.NoError(t, err)
	return fileCfg, md
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "", cfg.Theme)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, DefaultScrollOff, cfg.View.ScrollOff)
	assert.Equal(t, StatusBarHeight, cfg.View.StatusBarHeight)
	assert.Equal(t, DefaultHighlightLabel, cfg.Highlight.DefaultLabel)
	assert.Equal(t, []string{"mark", "note", "urgent"}, cfg.Highlight.Labels)
	assert.True(t, cfg.Highlight.Sidecar)
	assert.True(t, cfg.Highlight.SystemClipboard)
}

func TestValidateResetsInvalidValues(t *testing.T) {
	cfg := &Config{}
	cfg.View.ScrollOff = -4
	cfg.View.StatusBarHeight = 0

	cfg.validate()

	assert.Equal(t, DefaultScrollOff, cfg.View.ScrollOff)
	assert.Equal(t, StatusBarHeight, cfg.View.StatusBarHeight)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, DefaultHighlightLabel, cfg.Highlight.DefaultLabel)
	assert.NotEmpty(t, cfg.Highlight.Labels)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	cfg, _, err := loadFromFile(filepath.Join(t.TempDir(), "absent.toml"), false)

	require.NoError(t, err)
	assert.Equal(t, Config{}, *cfg)
}

func TestLoadFromFileParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
theme = "Paperwhite Light"

[view]
scroll_off = 5

[highlight]
default_label = "note"
sidecar = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, md, err := loadFromFile(path, false)

	require.NoError(t, err)
	assert.Equal(t, "Paperwhite Light", cfg.Theme)
	assert.Equal(t, 5, cfg.View.ScrollOff)
	assert.Equal(t, "note", cfg.Highlight.DefaultLabel)
	assert.False(t, cfg.Highlight.Sidecar)
	assert.True(t, md.IsDefined("highlight", "sidecar"))
	assert.False(t, md.IsDefined("highlight", "system_clipboard"))
}

func TestMergeFileConfigOverridesDefinedKeys(t *testing.T) {
	fileCfg, md := decodeTOML(t, `
theme = "custom"

[view]
scroll_off = 0

[highlight]
labels = ["a", "b"]
system_clipboard = false
`)

	cfg := NewDefaultConfig()
	mergeFileConfig(cfg, fileCfg, md)

	assert.Equal(t, "custom", cfg.Theme)
	assert.Equal(t, 0, cfg.View.ScrollOff, "explicit zero scroll_off should apply")
	assert.Equal(t, []string{"a", "b"}, cfg.Highlight.Labels)
	assert.False(t, cfg.Highlight.SystemClipboard)
}

func TestMergeFileConfigAbsentBooleanKeepsDefault(t *testing.T) {
	// highlight.sidecar defaults to true; a file that never mentions it
	// must not flip it through the decoded zero value.
	fileCfg, md := decodeTOML(t, `
[highlight]
default_label = "note"
`)

	cfg := NewDefaultConfig()
	mergeFileConfig(cfg, fileCfg, md)

	assert.True(t, cfg.Highlight.Sidecar)
	assert.True(t, cfg.Highlight.SystemClipboard)
	assert.Equal(t, "note", cfg.Highlight.DefaultLabel)
}

func TestMergeFileConfigKeepsLogFileWhenUndefined(t *testing.T) {
	fileCfg, md := decodeTOML(t, `
[logger]
log_level = "debug"
`)

	cfg := NewDefaultConfig()
	cfg.Logger.LogFilePath = "/tmp/preset.log"
	mergeFileConfig(cfg, fileCfg, md)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, "/tmp/preset.log", cfg.Logger.LogFilePath)
}

func TestSplitCommaList(t *testing.T) {
	assert.Nil(t, splitCommaList(""))
	assert.Equal(t, []string{"a", "b", "c"}, splitCommaList(" a, b ,,c "))
}

func TestLoadConfigRunsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`theme = "Paperwhite Light"`+"\n"), 0o644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Paperwhite Light", cfg.Theme)
	assert.Equal(t, DefaultHighlightLabel, cfg.Highlight.DefaultLabel)

	// Later calls return the already-loaded configuration.
	again, err := LoadConfig(filepath.Join(t.TempDir(), "other.toml"), nil)
	require.NoError(t, err)
	assert.Same(t, cfg, again)
	assert.Same(t, cfg, Get())
}
