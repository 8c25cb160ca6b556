// Package theme maps style names onto tcell styles. Marker styles are
// looked up as "marker.<label>" and fall back to the "marker" base, so
// unthemed labels still render as highlights.
package theme

import (
	"strings"

	"github.com/bethropolis/marque/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name. Lookup order: exact name, the part
// before the first dot, "Default", then the tcell default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "theme %q: style %q not found, falling back to Default", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("theme %q: style %q and Default both missing, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// MarkerStyle resolves the style for a highlight label.
func (t *Theme) MarkerStyle(label string) tcell.Style {
	return t.GetStyle("marker." + label)
}

// InkstoneDark and PaperwhiteLight are the built-in themes.
var (
	InkstoneDark    Theme
	PaperwhiteLight Theme
)

func init() {
	background := tcell.NewHexColor(0x23272e)
	foreground := tcell.NewHexColor(0xcdd3de)
	dim := tcell.NewHexColor(0x5f6672)
	yellow := tcell.NewHexColor(0xe3b341)
	green := tcell.NewHexColor(0x9ece6a)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x7aa2f7)
	magenta := tcell.NewHexColor(0xbb9af7)
	orange := tcell.NewHexColor(0xd19a66)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)

	InkstoneDark = Theme{
		Name:   "Inkstone Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// UI chrome
			"Default":         baseStyle,
			"Selection":       baseStyle.Reverse(true),
			"SearchHighlight": tcell.StyleDefault.Background(orange).Foreground(tcell.ColorBlack),
			"Void":            baseStyle.Foreground(dim),

			"StatusBar":        tcell.StyleDefault.Background(background).Foreground(foreground),
			"StatusBarMessage": tcell.StyleDefault.Background(background).Foreground(foreground).Bold(true),
			"StatusBarFind":    tcell.StyleDefault.Background(background).Foreground(green).Bold(true),
			"StatusBarMarks":   tcell.StyleDefault.Background(background).Foreground(yellow),

			// Highlight markers; labels without their own entry fall back
			// to the "marker" base via GetStyle.
			"marker":        tcell.StyleDefault.Background(yellow).Foreground(tcell.ColorBlack),
			"marker.mark":   tcell.StyleDefault.Background(yellow).Foreground(tcell.ColorBlack),
			"marker.note":   tcell.StyleDefault.Background(blue).Foreground(tcell.ColorBlack),
			"marker.urgent": tcell.StyleDefault.Background(orange).Foreground(tcell.ColorBlack).Bold(true),

			// Source pane syntax (tree-sitter HTML captures)
			"tag":                 baseStyle.Foreground(blue),
			"attribute":           baseStyle.Foreground(yellow),
			"string":              baseStyle.Foreground(green),
			"comment":             baseStyle.Foreground(dim).Italic(true),
			"number":              baseStyle.Foreground(orange),
			"constant":            baseStyle.Foreground(orange),
			"keyword":             baseStyle.Foreground(magenta).Bold(true),
			"type":                baseStyle.Foreground(cyan),
			"punctuation":         baseStyle.Foreground(dim),
			"punctuation.bracket": baseStyle.Foreground(dim),
			"punctuation.special": baseStyle.Foreground(magenta),
			"string.special":      baseStyle.Foreground(magenta),
			"escape":              baseStyle.Foreground(magenta),
		},
	}

	lightBg := tcell.NewHexColor(0xf4f1ea)
	lightFg := tcell.NewHexColor(0x3b3a36)
	lightDim := tcell.NewHexColor(0x9a968c)
	lightYellow := tcell.NewHexColor(0xb58900)
	lightGreen := tcell.NewHexColor(0x5f8700)
	lightBlue := tcell.NewHexColor(0x2a6db2)
	lightMagenta := tcell.NewHexColor(0x8959a8)
	lightOrange := tcell.NewHexColor(0xc05c25)

	lightBase := tcell.StyleDefault.Background(lightBg).Foreground(lightFg)

	PaperwhiteLight = Theme{
		Name:   "Paperwhite Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			"Default":         lightBase,
			"Selection":       lightBase.Reverse(true),
			"SearchHighlight": tcell.StyleDefault.Background(lightOrange).Foreground(tcell.ColorWhite),
			"Void":            lightBase.Foreground(lightDim),

			"StatusBar":        tcell.StyleDefault.Background(lightFg).Foreground(lightBg),
			"StatusBarMessage": tcell.StyleDefault.Background(lightFg).Foreground(lightBg).Bold(true),
			"StatusBarFind":    tcell.StyleDefault.Background(lightFg).Foreground(lightGreen).Bold(true),
			"StatusBarMarks":   tcell.StyleDefault.Background(lightFg).Foreground(lightYellow),

			"marker":        tcell.StyleDefault.Background(lightYellow).Foreground(tcell.ColorWhite),
			"marker.mark":   tcell.StyleDefault.Background(lightYellow).Foreground(tcell.ColorWhite),
			"marker.note":   tcell.StyleDefault.Background(lightBlue).Foreground(tcell.ColorWhite),
			"marker.urgent": tcell.StyleDefault.Background(lightOrange).Foreground(tcell.ColorWhite).Bold(true),

			"tag":                 lightBase.Foreground(lightBlue),
			"attribute":           lightBase.Foreground(lightYellow),
			"string":              lightBase.Foreground(lightGreen),
			"comment":             lightBase.Foreground(lightDim).Italic(true),
			"number":              lightBase.Foreground(lightOrange),
			"constant":            lightBase.Foreground(lightOrange),
			"keyword":             lightBase.Foreground(lightMagenta).Bold(true),
			"type":                lightBase.Foreground(lightBlue),
			"punctuation":         lightBase.Foreground(lightDim),
			"punctuation.bracket": lightBase.Foreground(lightDim),
			"punctuation.special": lightBase.Foreground(lightMagenta),
			"string.special":      lightBase.Foreground(lightMagenta),
			"escape":              lightBase.Foreground(lightMagenta),
		},
	}

	CurrentTheme = &InkstoneDark
}

// CurrentTheme is the process-wide active theme.
var CurrentTheme *Theme

// GetCurrentTheme returns the active theme, never nil.
func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &InkstoneDark
	}
	return CurrentTheme
}

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
