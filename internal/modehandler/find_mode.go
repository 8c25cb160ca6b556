package modehandler

import (
	"unicode/utf8"

	"github.com/bethropolis/marque/internal/event"
	"github.com/bethropolis/marque/internal/input"
	"github.com/bethropolis/marque/internal/logger"
)

// handleActionFind handles actions when in ModeFind.
func (mh *ModeHandler) handleActionFind(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false // Track if status bar text needs update

	// Rune presses are prompt text even when the rune is bound to a
	// normal-mode action.
	if actionEvent.Rune != 0 {
		mh.findBuffer += string(actionEvent.Rune)
		needsUpdate = true
	} else {
		switch actionEvent.Action {
		case input.ActionDeleteCharBackward:
			if len(mh.findBuffer) > 0 {
				_, size := utf8.DecodeLastRuneInString(mh.findBuffer)
				mh.findBuffer = mh.findBuffer[:len(mh.findBuffer)-size]
				needsUpdate = true
			} else {
				// Backspace on an empty find buffer returns to Normal mode
				mh.cancelFindMode()
			}

		case input.ActionConfirm: // Enter key: Execute search
			mh.executeFind()
			mh.currentMode = ModeNormal
			mh.findBuffer = ""

		case input.ActionQuit: // Escape key: Cancel find
			mh.cancelFindMode()

		default:
			// Ignore other special keys in find mode
			actionProcessed = false
		}
	}

	// Update status bar display if buffer changed
	if needsUpdate && mh.currentMode == ModeFind {
		mh.statusBar.SetTemporaryMessage("/%s", mh.findBuffer)
	}

	return actionProcessed
}

func (mh *ModeHandler) enterFindMode() {
	mh.currentMode = ModeFind
	mh.findBuffer = ""
	mh.statusBar.SetTemporaryMessage("/")
	logger.Debugf("modehandler: entering find mode")
}

// cancelFindMode centralizes logic for exiting Find mode without executing
// a search.
func (mh *ModeHandler) cancelFindMode() {
	mh.currentMode = ModeNormal
	mh.findBuffer = ""
	mh.find.Clear()
	mh.view.SetMatches(nil)
	mh.statusBar.ResetTemporaryMessage()
	logger.Debugf("modehandler: canceled find mode")
}

// executeFind runs the buffered pattern over the visible pane's content.
func (mh *ModeHandler) executeFind() {
	term := mh.findBuffer
	if term == "" {
		mh.find.Clear()
		mh.view.SetMatches(nil)
		mh.statusBar.ResetTemporaryMessage()
		return
	}

	count, err := mh.find.Search(term, mh.view.Content())
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Invalid pattern: %v", err)
		return
	}
	mh.view.SetMatches(mh.find.Matches())
	mh.eventManager.Dispatch(event.TypeFindExecuted, event.FindExecutedData{Query: term, Matches: count})

	if count == 0 {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", term)
		return
	}

	// Jump to the first match at or after the caret.
	if span, ok := mh.find.Next(mh.view.Caret() - 1); ok {
		mh.placeCaret(span.Start, mh.stickySelect)
	}
	mh.statusBar.SetTemporaryMessage("%d matches for '%s'", count, term)
}

// jumpToMatch moves the caret to the next or previous match of the last
// search, wrapping around the content.
func (mh *ModeHandler) jumpToMatch(forward bool) {
	if !mh.find.HasMatches() {
		mh.statusBar.SetTemporaryMessage("No search in progress")
		return
	}

	span, ok := mh.find.Next(mh.view.Caret())
	if !forward {
		span, ok = mh.find.Prev(mh.view.Caret())
	}
	if !ok {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", mh.find.Term())
		return
	}

	mh.placeCaret(span.Start, mh.stickySelect)
	mh.statusBar.SetTemporaryMessage("/%s", mh.find.Term())
}
