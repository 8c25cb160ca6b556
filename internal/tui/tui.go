// Package tui wraps the tcell screen lifecycle.
package tui

import (
	"fmt"

	"github.com/bethropolis/marque/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes the terminal screen.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing tcell screen: %w", err)
	}

	defStyle := theme.GetCurrentTheme().GetStyle("Default")
	s.SetStyle(defStyle)

	return &TUI{screen: s}, nil
}

// NewFromScreen wraps an already initialized screen, such as a
// simulation screen in tests.
func NewFromScreen(s tcell.Screen) *TUI {
	return &TUI{screen: s}
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent blocks until the next terminal event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show flushes pending changes to the terminal.
func (t *TUI) Show() {
	t.screen.Show()
}

// Size returns the terminal dimensions.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access for drawing code.
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
