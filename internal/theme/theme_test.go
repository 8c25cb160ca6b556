package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStyleFallbackChain(t *testing.T) {
	exact := tcell.StyleDefault.Foreground(tcell.ColorRed)
	base := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	def := tcell.StyleDefault.Foreground(tcell.ColorGray)

	th := &Theme{
		Name: "test",
		Styles: map[string]tcell.Style{
			"Default":     def,
			"marker":      base,
			"marker.note": exact,
		},
	}

	assert.Equal(t, exact, th.GetStyle("marker.note"))
	assert.Equal(t, base, th.GetStyle("marker.custom"), "dotted name should fall back to its base")
	assert.Equal(t, def, th.GetStyle("nonexistent"))

	empty := &Theme{Name: "empty", Styles: map[string]tcell.Style{}}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle("anything"))
}

func TestMarkerStyle(t *testing.T) {
	th := &InkstoneDark

	assert.Equal(t, th.GetStyle("marker.note"), th.MarkerStyle("note"))
	assert.Equal(t, th.GetStyle("marker"), th.MarkerStyle("unthemed-label"))
}

func TestBuiltinThemesHaveCoreStyles(t *testing.T) {
	for _, th := range []*Theme{&InkstoneDark, &PaperwhiteLight} {
		for _, name := range []string{"Default", "Selection", "SearchHighlight", "StatusBar", "marker"} {
			_, ok := th.Styles[name]
			assert.True(t, ok, "theme %q missing style %q", th.Name, name)
		}
	}
}

func TestManagerDefaultsToInkstoneDark(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	mgr := NewManager()

	assert.Equal(t, InkstoneDark.Name, mgr.Current().Name)
	assert.Equal(t, []string{InkstoneDark.Name, PaperwhiteLight.Name}, mgr.ListThemes())
}

func TestManagerSetTheme(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	mgr := NewManager()

	require.NoError(t, mgr.SetTheme("PAPERWHITE light"))
	assert.Equal(t, PaperwhiteLight.Name, mgr.Current().Name)

	err := mgr.SetTheme("No Such Theme")
	assert.Error(t, err)
	assert.Equal(t, PaperwhiteLight.Name, mgr.Current().Name, "failed switch must not change the active theme")
}

func TestManagerCycleVisitsAllThemes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	mgr := NewManager()

	assert.Equal(t, PaperwhiteLight.Name, mgr.Cycle().Name)
	assert.Equal(t, InkstoneDark.Name, mgr.Cycle().Name, "cycle should wrap back to the first theme")
}

func TestManagerLoadsCustomThemesFromConfigDir(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	themesDir := filepath.Join(configHome, "marque", themesDirName)
	require.NoError(t, os.MkdirAll(themesDir, 0o755))
	data := `
name = "Slate"
is_dark = true

[styles.Default]
fg = "#c0c0c0"
bg = "#202020"
`
	require.NoError(t, os.WriteFile(filepath.Join(themesDir, "slate.toml"), []byte(data), 0o644))

	mgr := NewManager()

	custom, ok := mgr.GetTheme("slate")
	require.True(t, ok)
	assert.Equal(t, "Slate", custom.Name)
	assert.True(t, custom.IsDark)
	require.NoError(t, mgr.SetTheme("Slate"))
	assert.Equal(t, "Slate", mgr.Current().Name)
}

func TestLoadThemeFromFileInheritsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocean.toml")
	data := `
name = "Ocean"

[styles.Default]
fg = "#e0e0e0"
bg = "#101010"

[styles.keyword]
fg = "#7aa2f7"
bold = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)

	base := tcell.StyleDefault.
		Foreground(tcell.NewHexColor(0xe0e0e0)).
		Background(tcell.NewHexColor(0x101010))
	assert.Equal(t, base, th.Styles["Default"])
	assert.Equal(t, base.Foreground(tcell.NewHexColor(0x7aa2f7)).Bold(true), th.Styles["keyword"],
		"unset properties should inherit from the Default style")
}

func TestLoadThemeFromFileNameFallsBackToFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slate.toml")
	require.NoError(t, os.WriteFile(path, []byte("[styles.Default]\nfg = \"#ffffff\"\n"), 0o644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "slate", th.Name)
}

func TestLoadThemeFromFileSkipsBadStyles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	data := `
name = "Broken"

[styles.Default]
fg = "#ffffff"

[styles.bad]
fg = "notacolor"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)

	_, ok := th.Styles["bad"]
	assert.False(t, ok)
	assert.Equal(t, th.Styles["Default"], th.GetStyle("bad"), "skipped style should resolve to Default")
}

func TestParseColorString(t *testing.T) {
	c, err := parseColorString(" #A1B2C3 ")
	require.NoError(t, err)
	assert.Equal(t, tcell.NewHexColor(0xa1b2c3), c)

	c, err = parseColorString("reset")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorReset, c)

	_, err = parseColorString("#fff")
	assert.Error(t, err)

	_, err = parseColorString("crimson")
	assert.Error(t, err)
}
