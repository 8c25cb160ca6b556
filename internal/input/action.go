// Package input translates terminal key events into inspector actions.
package input

// Action represents an operation the inspector can perform.
type Action int

const (
	// Meta
	ActionUnknown Action = iota
	ActionQuit
	ActionSave

	// Caret movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // start of row
	ActionMoveEnd  // end of row
	ActionMoveDocStart
	ActionMoveDocEnd

	// Selection and highlighting
	ActionToggleSelect
	ActionConfirm // Enter: toggle highlight, or submit the active prompt
	ActionCycleLabel
	ActionEnterLabelMode

	// Search
	ActionEnterFindMode
	ActionFindNext
	ActionFindPrev

	// Clipboard
	ActionCopyText
	ActionCopyTokens
	ActionPasteTokens

	// Panes and appearance
	ActionToggleSource
	ActionCycleTheme

	// Prompt editing
	ActionInsertRune // carries the typed rune
	ActionDeleteCharBackward
)

// ActionEvent is a decoded input event. Rune is set for every plain rune
// key press, including ones bound to an action, so prompt modes can treat
// command keys as text.
type ActionEvent struct {
	Action Action
	Rune   rune
}
