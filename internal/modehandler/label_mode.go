package modehandler

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/marque/internal/input"
	"github.com/bethropolis/marque/internal/logger"
)

// handleActionLabel handles actions when in ModeLabel.
func (mh *ModeHandler) handleActionLabel(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false

	if actionEvent.Rune != 0 {
		mh.labelBuffer += string(actionEvent.Rune)
		needsUpdate = true
	} else {
		switch actionEvent.Action {
		case input.ActionDeleteCharBackward:
			if len(mh.labelBuffer) > 0 {
				_, size := utf8.DecodeLastRuneInString(mh.labelBuffer)
				mh.labelBuffer = mh.labelBuffer[:len(mh.labelBuffer)-size]
				needsUpdate = true
			} else {
				mh.cancelLabelMode()
			}

		case input.ActionConfirm: // Enter key: adopt the typed label
			label := strings.TrimSpace(mh.labelBuffer)
			switch {
			case label == "":
				mh.cancelLabelMode()
			case strings.ContainsAny(label, " \t"):
				// Labels land in a class attribute, where whitespace
				// splits them apart.
				mh.statusBar.SetTemporaryMessage("Label cannot contain spaces")
			default:
				mh.activeLabel = label
				mh.currentMode = ModeNormal
				mh.labelBuffer = ""
				mh.statusBar.SetTemporaryMessage("Label: %s", mh.activeLabel)
				logger.Debugf("modehandler: active label set to %q", label)
			}

		case input.ActionQuit: // Escape key: cancel
			mh.cancelLabelMode()

		default:
			actionProcessed = false
		}
	}

	if needsUpdate && mh.currentMode == ModeLabel {
		mh.statusBar.SetTemporaryMessage("Label: %s", mh.labelBuffer)
	}

	return actionProcessed
}

func (mh *ModeHandler) enterLabelMode() {
	mh.currentMode = ModeLabel
	mh.labelBuffer = ""
	mh.statusBar.SetTemporaryMessage("Label: ")
	logger.Debugf("modehandler: entering label mode")
}

func (mh *ModeHandler) cancelLabelMode() {
	mh.currentMode = ModeNormal
	mh.labelBuffer = ""
	mh.statusBar.ResetTemporaryMessage()
	logger.Debugf("modehandler: canceled label mode")
}
