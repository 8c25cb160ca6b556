package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/marque/internal/logger"
	"github.com/gdamore/tcell/v2"
)

const themesDirName = "themes"

// Manager holds loaded themes and tracks the active one.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
	mutex       sync.RWMutex
	loadError   error
}

// NewManager loads built-in themes plus any .toml themes under the user
// config directory and picks the initial active theme.
func NewManager() *Manager {
	mgr := &Manager{
		themes: make(map[string]*Theme),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir, custom themes unavailable: %v", err)
	} else {
		mgr.themesDir = filepath.Join(configDir, "marque", themesDirName)
	}

	mgr.loadBuiltinThemes()

	if mgr.themesDir != "" {
		mgr.loadError = mgr.LoadThemesFromDir()
		if mgr.loadError != nil {
			logger.Errorf("Error loading themes from %q: %v", mgr.themesDir, mgr.loadError)
		}
	}

	if t, ok := mgr.themes[strings.ToLower(InkstoneDark.Name)]; ok {
		mgr.activeTheme = t
	} else {
		for _, t := range mgr.themes {
			mgr.activeTheme = t
			break
		}
	}

	if mgr.activeTheme == nil {
		mgr.activeTheme = &Theme{
			Name: "Failsafe",
			Styles: map[string]tcell.Style{
				"Default": tcell.StyleDefault,
			},
		}
	}

	return mgr
}

func (m *Manager) loadBuiltinThemes() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.themes[strings.ToLower(InkstoneDark.Name)] = &InkstoneDark
	m.themes[strings.ToLower(PaperwhiteLight.Name)] = &PaperwhiteLight
}

// LoadThemesFromDir scans the themes directory for .toml files. A missing
// directory is created, not an error.
func (m *Manager) LoadThemesFromDir() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}

	if _, err := os.Stat(m.themesDir); os.IsNotExist(err) {
		if err := os.MkdirAll(m.themesDir, 0o755); err != nil {
			return fmt.Errorf("creating theme dir: %w", err)
		}
		return nil
	}

	files, err := os.ReadDir(m.themesDir)
	if err != nil {
		return fmt.Errorf("reading theme directory %q: %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		theme, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from %q: %v", filePath, err)
			continue
		}

		nameLower := strings.ToLower(theme.Name)
		if existing, ok := m.themes[nameLower]; ok {
			logger.Warnf("Theme %q from %q overrides existing theme %q", theme.Name, filePath, existing.Name)
		}
		m.themes[nameLower] = theme
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes.", loadedCount)
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.activeTheme == nil {
		return &Theme{Name: "NilFallback", Styles: map[string]tcell.Style{"Default": tcell.StyleDefault}}
	}
	return m.activeTheme
}

// SetTheme activates a theme by name, case-insensitive.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme %q not found", name)
	}

	if m.activeTheme != theme {
		m.activeTheme = theme
		SetCurrentTheme(theme)
	}
	return nil
}

// Cycle activates the next theme in name order and returns it.
func (m *Manager) Cycle() *Theme {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	if len(names) == 0 {
		return m.activeTheme
	}
	sort.Strings(names)

	current := ""
	if m.activeTheme != nil {
		current = strings.ToLower(m.activeTheme.Name)
	}
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}

	m.activeTheme = m.themes[next]
	SetCurrentTheme(m.activeTheme)
	return m.activeTheme
}

// ListThemes returns the display names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a theme by name, case-insensitive.
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
