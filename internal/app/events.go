package app

import (
	"github.com/bethropolis/marque/internal/event"
	"github.com/bethropolis/marque/internal/logger"
)

// handleMarksChanged rebuilds the view regions after any highlight
// mutation, whether from a toggle or a batch of applied tokens.
func (a *App) handleMarksChanged(e event.Event) bool {
	a.syncMarks()
	return false // Not consumed
}

// handleSelectionChangedForStatus keeps the caret readout current while
// the selection moves.
func (a *App) handleSelectionChangedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	return false // Not consumed
}

// handleDocSavedForStatus refreshes the status line after a save.
func (a *App) handleDocSavedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.DocSavedData); ok {
		logger.Infof("app: saved %s with %d marks", data.Path, data.Marks)
	}
	a.updateStatusBarContent()
	return false // Not consumed
}

// handleThemeChanged repaints with the new theme.
func (a *App) handleThemeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ThemeChangedData); ok {
		logger.Infof("app: theme changed to %s", data.Name)
	}
	a.requestRedraw()
	return false // Not consumed
}
