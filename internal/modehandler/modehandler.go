// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/marque"
	"github.com/bethropolis/marque/internal/clipboard"
	"github.com/bethropolis/marque/internal/cursor"
	"github.com/bethropolis/marque/internal/doc"
	"github.com/bethropolis/marque/internal/event"
	"github.com/bethropolis/marque/internal/find"
	"github.com/bethropolis/marque/internal/input"
	"github.com/bethropolis/marque/internal/logger"
	"github.com/bethropolis/marque/internal/statusbar"
	"github.com/bethropolis/marque/internal/view"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeFind
	ModeLabel
)

// ModeHandler manages input modes and turns actions into session, view
// and document operations.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	session        *marque.Session
	document       *doc.Document
	cursor         *cursor.Manager
	view           *view.View
	find           *find.Manager
	clipboard      *clipboard.Manager
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{} // Channel to signal app termination

	labels      []string
	sidecarSave bool

	onToggleSource func() string // returns the new pane mode, "" for the document pane
	onCycleTheme   func() string // returns the new theme name

	// Internal State
	currentMode   InputMode
	findBuffer    string
	labelBuffer   string
	activeLabel   string
	stickySelect  bool // selection started with ActionToggleSelect survives plain movement
	sourceActive  bool
	quitRequested bool // guards against closing quitSignal twice
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Session        *marque.Session
	Document       *doc.Document
	Cursor         *cursor.Manager
	View           *view.View
	Find           *find.Manager
	Clipboard      *clipboard.Manager
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
	DefaultLabel   string
	Labels         []string
	SidecarSave    bool
	OnToggleSource func() string
	OnCycleTheme   func() string
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Session == nil || cfg.Document == nil || cfg.Cursor == nil || cfg.View == nil ||
		cfg.Find == nil || cfg.Clipboard == nil || cfg.InputProcessor == nil ||
		cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		// Panic indicates a programming error during setup
		panic("modehandler.New: Missing required dependencies in Config")
	}
	label := cfg.DefaultLabel
	if label == "" {
		label = "mark"
	}
	labels := cfg.Labels
	if len(labels) == 0 {
		labels = []string{label}
	}
	return &ModeHandler{
		session:        cfg.Session,
		document:       cfg.Document,
		cursor:         cfg.Cursor,
		view:           cfg.View,
		find:           cfg.Find,
		clipboard:      cfg.Clipboard,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		labels:         labels,
		sidecarSave:    cfg.SidecarSave,
		onToggleSource: cfg.OnToggleSource,
		onCycleTheme:   cfg.OnCycleTheme,
		currentMode:    ModeNormal,
		activeLabel:    label,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		// Pass the original tcell event for modifier checks
		return mh.handleActionNormal(actionEvent, ev)
	case ModeFind:
		return mh.handleActionFind(actionEvent)
	case ModeLabel:
		return mh.handleActionLabel(actionEvent)
	default:
		logger.Debugf("modehandler: unknown input mode %v", mh.currentMode)
		return false
	}
}

// handleActionNormal handles actions when in ModeNormal.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent, ev *tcell.EventKey) bool {
	actionProcessed := true
	isShift := ev.Modifiers()&tcell.ModShift != 0

	if isMovementAction(actionEvent.Action) {
		mh.moveCaret(actionEvent.Action, isShift || mh.stickySelect)
		return true
	}

	switch actionEvent.Action {
	case input.ActionToggleSelect:
		mh.toggleSelect()

	case input.ActionConfirm:
		mh.toggleHighlight()

	case input.ActionCycleLabel:
		mh.cycleLabel()

	case input.ActionEnterLabelMode:
		mh.enterLabelMode()

	case input.ActionEnterFindMode:
		mh.enterFindMode()

	case input.ActionFindNext:
		mh.jumpToMatch(true)

	case input.ActionFindPrev:
		mh.jumpToMatch(false)

	case input.ActionCopyText:
		mh.copySelection()

	case input.ActionCopyTokens:
		mh.copyTokens()

	case input.ActionPasteTokens:
		mh.pasteTokens()

	case input.ActionSave:
		mh.saveDocument()

	case input.ActionToggleSource:
		if mh.onToggleSource == nil {
			actionProcessed = false
			break
		}
		// Leaving a selection behind while the pane swaps underneath it
		// would let a later toggle act on stale endpoints.
		mh.stickySelect = false
		mh.cursor.ClearSelection()
		paneMode := mh.onToggleSource()
		mh.sourceActive = paneMode != ""
		if mh.sourceActive {
			mh.statusBar.SetTemporaryMessage("Source pane (read-only)")
		} else {
			mh.statusBar.SetTemporaryMessage("Document pane")
		}

	case input.ActionCycleTheme:
		if mh.onCycleTheme == nil {
			actionProcessed = false
			break
		}
		mh.statusBar.SetTemporaryMessage("Theme: %s", mh.onCycleTheme())

	case input.ActionQuit:
		if mh.stickySelect || mh.cursor.HasSelection() {
			mh.stickySelect = false
			mh.cursor.ClearSelection()
			mh.syncView()
			break
		}
		if !mh.quitRequested {
			mh.quitRequested = true
			close(mh.quitSignal) // Signal app to quit
		}
		actionProcessed = false

	case input.ActionUnknown:
		actionProcessed = false
	default:
		actionProcessed = false
	}

	return actionProcessed
}

func isMovementAction(action input.Action) bool {
	switch action {
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionMovePageUp, input.ActionMovePageDown, input.ActionMoveHome, input.ActionMoveEnd,
		input.ActionMoveDocStart, input.ActionMoveDocEnd:
		return true
	}
	return false
}

// moveCaret resolves a movement action against the view layout and places
// the caret, extending the selection when requested.
func (mh *ModeHandler) moveCaret(action input.Action, extend bool) {
	layout := mh.view.Layout()
	cur := mh.view.Caret()
	row, col := layout.PositionFor(cur)

	target := cur
	switch action {
	case input.ActionMoveLeft:
		target = cur - 1
	case input.ActionMoveRight:
		target = cur + 1
	case input.ActionMoveUp:
		target = layout.OffsetAt(row-1, col)
	case input.ActionMoveDown:
		target = layout.OffsetAt(row+1, col)
	case input.ActionMovePageUp:
		target = layout.OffsetAt(row-mh.view.Height(), col)
	case input.ActionMovePageDown:
		target = layout.OffsetAt(row+mh.view.Height(), col)
	case input.ActionMoveHome:
		target = layout.OffsetAt(row, 0)
	case input.ActionMoveEnd:
		target = layout.Row(row).End
	case input.ActionMoveDocStart:
		target = 0
	case input.ActionMoveDocEnd:
		target = layout.Total()
	}

	mh.placeCaret(target, extend)
}

// placeCaret moves the caret to offset. In the source pane the caret lives
// on the view alone; in the document pane it goes through the cursor
// manager so the selection anchor stays consistent.
func (mh *ModeHandler) placeCaret(offset int, extend bool) {
	if mh.sourceActive {
		mh.view.SetCaret(offset)
		return
	}

	if extend {
		mh.cursor.StartSelection()
	} else {
		mh.cursor.ClearSelection()
	}
	mh.cursor.SetOffset(offset)
	mh.syncView()

	start, end, ok := mh.cursor.SelectionRange()
	if !ok {
		start, end = mh.cursor.Offset(), mh.cursor.Offset()
	}
	mh.eventManager.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Start: start, End: end})
}

// syncView mirrors the cursor manager's caret and selection onto the view.
func (mh *ModeHandler) syncView() {
	mh.view.SetCaret(mh.cursor.Offset())
	if start, end, ok := mh.cursor.SelectionRange(); ok {
		mh.view.SetSelection(start, end)
	} else {
		mh.view.ClearSelection()
	}
}

// refreshSession rebuilds the coordinate index after a tree mutation.
func (mh *ModeHandler) refreshSession() {
	mh.session.Refresh()
	mh.eventManager.Dispatch(event.TypeIndexRefreshed, event.IndexRefreshedData{Runes: mh.session.Index().Len()})
}

func (mh *ModeHandler) toggleSelect() {
	if mh.sourceActive {
		mh.statusBar.SetTemporaryMessage("Selection needs the document pane")
		return
	}
	if mh.stickySelect {
		mh.stickySelect = false
		mh.cursor.ClearSelection()
		mh.syncView()
		mh.statusBar.ResetTemporaryMessage()
		return
	}
	mh.stickySelect = true
	mh.cursor.StartSelection()
	mh.statusBar.SetTemporaryMessage("Select")
}

// toggleHighlight runs one highlight pass over the current selection.
func (mh *ModeHandler) toggleHighlight() {
	if mh.sourceActive {
		mh.statusBar.SetTemporaryMessage("Marks need the document pane")
		return
	}

	addr, err := mh.session.Selection()
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Mark failed: %v", err)
		logger.Debugf("modehandler: resolving selection: %v", err)
		return
	}
	if addr.IsZeroWidth() {
		mh.statusBar.SetTemporaryMessage("Nothing selected to mark")
		return
	}

	created, err := addr.Highlight(mh.activeLabel)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Mark failed: %v", err)
		logger.Debugf("modehandler: highlight %s: %v", addr, err)
		return
	}
	mh.refreshSession()

	mh.eventManager.Dispatch(event.TypeHighlightToggled, event.HighlightToggledData{
		Label:   mh.activeLabel,
		Start:   addr.Start(),
		End:     addr.End(),
		Created: len(created),
	})

	mh.stickySelect = false
	mh.cursor.ClearSelection()
	mh.syncView()

	if len(created) > 0 {
		mh.statusBar.SetTemporaryMessage("Marked [%s]", mh.activeLabel)
	} else {
		mh.statusBar.SetTemporaryMessage("Unmarked [%s]", mh.activeLabel)
	}
}

// cycleLabel rotates the active label through the configured cycle.
func (mh *ModeHandler) cycleLabel() {
	if len(mh.labels) == 0 {
		return
	}
	next := 0
	for i, l := range mh.labels {
		if l == mh.activeLabel {
			next = (i + 1) % len(mh.labels)
			break
		}
	}
	mh.activeLabel = mh.labels[next]
	mh.statusBar.SetTemporaryMessage("Label: %s", mh.activeLabel)
}

func (mh *ModeHandler) copySelection() {
	if mh.sourceActive {
		mh.statusBar.SetTemporaryMessage("Copy needs the document pane")
		return
	}
	addr, err := mh.session.Selection()
	if err != nil || addr.IsZeroWidth() {
		mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		return
	}
	if err := mh.clipboard.Copy(addr.Content()); err != nil {
		mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Copied %d runes", addr.Width())
}

func (mh *ModeHandler) copyTokens() {
	tokens := mh.session.Serialize()
	if len(tokens) == 0 {
		mh.statusBar.SetTemporaryMessage("No marks to copy")
		return
	}
	if err := mh.clipboard.CopyTokens(tokens); err != nil {
		mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Copied %d mark tokens", len(tokens))
}

// pasteTokens re-applies serialized mark tokens from the clipboard. Each
// token runs one highlight pass, so pasting a range that is already
// marked unmarks it.
func (mh *ModeHandler) pasteTokens() {
	if mh.sourceActive {
		mh.statusBar.SetTemporaryMessage("Paste needs the document pane")
		return
	}
	tokens, err := mh.clipboard.ReadTokens()
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		return
	}
	if len(tokens) == 0 {
		mh.statusBar.SetTemporaryMessage("Clipboard empty")
		return
	}

	addrs := mh.session.Deserialize(tokens)
	applied := 0
	for _, addr := range addrs {
		if _, err := addr.Highlight(mh.activeLabel); err != nil {
			logger.Warnf("modehandler: applying pasted token %s: %v", addr, err)
			continue
		}
		applied++
	}
	mh.refreshSession()

	mh.eventManager.Dispatch(event.TypeMarksApplied, event.MarksAppliedData{
		Applied: applied,
		Dropped: len(tokens) - applied,
	})
	mh.statusBar.SetTemporaryMessage("Toggled %d of %d pasted ranges", applied, len(tokens))
}

func (mh *ModeHandler) saveDocument() {
	if err := mh.document.Save(""); err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		return
	}
	tokens := mh.session.Serialize()
	if mh.sidecarSave {
		if err := mh.document.WriteSidecar(tokens); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED writing marks: %v", err)
			return
		}
	}
	mh.eventManager.Dispatch(event.TypeDocSaved, event.DocSavedData{
		Path:  mh.document.FilePath(),
		Marks: len(tokens),
	})
	mh.statusBar.SetTemporaryMessage("Saved %s (%d marks)", mh.document.FilePath(), len(tokens))
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetActiveLabel returns the label the next highlight pass will use.
func (mh *ModeHandler) GetActiveLabel() string {
	return mh.activeLabel
}

// GetFindBuffer returns the find prompt content (e.g. for display).
func (mh *ModeHandler) GetFindBuffer() string {
	if mh.currentMode == ModeFind {
		return mh.findBuffer
	}
	return ""
}

// GetLabelBuffer returns the label prompt content.
func (mh *ModeHandler) GetLabelBuffer() string {
	if mh.currentMode == ModeLabel {
		return mh.labelBuffer
	}
	return ""
}
