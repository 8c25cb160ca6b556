package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/marque/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// TomlStyleDef is a single style definition in a theme file. Pointer
// fields distinguish unset properties from explicit zero values.
type TomlStyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme is the on-disk structure of a theme file.
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme file into a Theme.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading theme file %q: %w", filePath, err)
	}

	var tomlTheme TomlTheme
	metadata, err := toml.Decode(string(data), &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("parsing theme file %q: %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("theme file %q: unrecognized keys: %v", filePath, metadata.Undecoded())
	}

	if tomlTheme.Name == "" {
		tomlTheme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style),
	}

	// The theme's Default style becomes the base every other style
	// inherits unset properties from.
	baseStyle := tcell.StyleDefault
	if defaultTomlStyle, ok := tomlTheme.Styles["Default"]; ok {
		var parseErr error
		baseStyle, parseErr = convertTomlStyle(defaultTomlStyle, tcell.StyleDefault)
		if parseErr != nil {
			logger.Warnf("theme %q: bad Default style, using tcell default: %v", theme.Name, parseErr)
			baseStyle = tcell.StyleDefault
		}
	}
	theme.Styles["Default"] = baseStyle

	for name, tomlStyle := range tomlTheme.Styles {
		if name == "Default" {
			continue
		}
		style, err := convertTomlStyle(tomlStyle, baseStyle)
		if err != nil {
			logger.Warnf("theme %q: skipping style %q: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}

	logger.DebugTagf("theme", "loaded theme %q from %q", theme.Name, filePath)
	return theme, nil
}

// convertTomlStyle applies a TOML definition on top of a base style.
func convertTomlStyle(tomlStyle TomlStyleDef, baseStyle tcell.Style) (tcell.Style, error) {
	style := baseStyle

	if tomlStyle.Fg != nil {
		color, err := parseColorString(*tomlStyle.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color %q: %w", *tomlStyle.Fg, err)
		}
		style = style.Foreground(color)
	}
	if tomlStyle.Bg != nil {
		color, err := parseColorString(*tomlStyle.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color %q: %w", *tomlStyle.Bg, err)
		}
		style = style.Background(color)
	}
	if tomlStyle.Bold != nil {
		style = style.Bold(*tomlStyle.Bold)
	}
	if tomlStyle.Italic != nil {
		style = style.Italic(*tomlStyle.Italic)
	}
	if tomlStyle.Underline != nil {
		style = style.Underline(*tomlStyle.Underline)
	}
	if tomlStyle.Reverse != nil {
		style = style.Reverse(*tomlStyle.Reverse)
	}

	return style, nil
}

// parseColorString accepts #RRGGBB hex codes plus the "reset" and
// "default" keywords.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color %q, must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value %q: %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	}

	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}

	return tcell.ColorDefault, fmt.Errorf("unknown color format or name %q", s)
}
