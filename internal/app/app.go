// internal/app/app.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/marque"
	"github.com/bethropolis/marque/internal/clipboard"
	"github.com/bethropolis/marque/internal/config"
	"github.com/bethropolis/marque/internal/cursor"
	"github.com/bethropolis/marque/internal/doc"
	"github.com/bethropolis/marque/internal/event"
	"github.com/bethropolis/marque/internal/find"
	"github.com/bethropolis/marque/internal/input"
	"github.com/bethropolis/marque/internal/logger"
	"github.com/bethropolis/marque/internal/modehandler"
	"github.com/bethropolis/marque/internal/source"
	"github.com/bethropolis/marque/internal/statusbar"
	"github.com/bethropolis/marque/internal/theme"
	"github.com/bethropolis/marque/internal/tui"
	"github.com/bethropolis/marque/internal/view"
)

// selectionShim adapts the cursor manager to the session's selection
// contract. The session and the cursor manager need each other at
// construction time; the shim is handed to the session first and pointed
// at the cursor manager once both exist.
type selectionShim struct {
	cursor *cursor.Manager
}

func (s *selectionShim) ReadSelection() (marque.Selection, bool) {
	if s.cursor == nil {
		return marque.Selection{}, false
	}
	return s.cursor.ReadSelection()
}

func (s *selectionShim) WriteSelection(sel marque.Selection) error {
	if s.cursor == nil {
		return nil
	}
	return s.cursor.WriteSelection(sel)
}

// App encapsulates the core components and main loop of the viewer.
type App struct {
	cfg          *config.Config
	tuiManager   *tui.TUI
	document     *doc.Document
	session      *marque.Session
	cursorMgr    *cursor.Manager
	viewPane     *view.View
	findMgr      *find.Manager
	clipboardMgr *clipboard.Manager
	sourceHl     *source.Highlighter
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	themeManager *theme.Manager
	modeHandler  *modehandler.ModeHandler
	activeTheme  *theme.Theme

	sourceMode bool
	markCount  int

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(filePath string) (*App, error) {
	cfg := config.Get()

	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	themeManager := theme.NewManager()
	if cfg.Theme != "" {
		if err := themeManager.SetTheme(cfg.Theme); err != nil {
			logger.Warnf("app: %v", err)
		}
	}

	document, err := doc.Load(filePath)
	if err != nil {
		tuiManager.Close()
		return nil, fmt.Errorf("loading document: %w", err)
	}

	shim := &selectionShim{}
	session := marque.NewSession(document.Root(), shim)
	cursorMgr := cursor.NewManager(session)
	shim.cursor = cursorMgr

	viewPane := view.New(cfg.View.ScrollOff)
	viewPane.SetContent(session.Content())

	sourceHl, err := source.NewHighlighter()
	if err != nil {
		// The source pane still works, just unstyled.
		logger.Warnf("app: source highlighter unavailable: %v", err)
		sourceHl = nil
	}

	statusBar := statusbar.New(statusbar.DefaultConfig())
	eventManager := event.NewManager()
	quitChan := make(chan struct{})

	appInstance := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		document:      document,
		session:       session,
		cursorMgr:     cursorMgr,
		viewPane:      viewPane,
		findMgr:       find.NewManager(),
		clipboardMgr:  clipboard.NewManager(cfg.Highlight.SystemClipboard),
		sourceHl:      sourceHl,
		statusBar:     statusBar,
		eventManager:  eventManager,
		themeManager:  themeManager,
		activeTheme:   themeManager.Current(),
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}

	modeHandlerCfg := modehandler.Config{
		Session:        session,
		Document:       document,
		Cursor:         cursorMgr,
		View:           viewPane,
		Find:           appInstance.findMgr,
		Clipboard:      appInstance.clipboardMgr,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
		DefaultLabel:   cfg.Highlight.DefaultLabel,
		Labels:         cfg.Highlight.Labels,
		SidecarSave:    cfg.Highlight.Sidecar,
		OnToggleSource: appInstance.toggleSourcePane,
		OnCycleTheme:   appInstance.cycleTheme,
	}
	appInstance.modeHandler = modehandler.New(modeHandlerCfg)

	// App level wiring: react to mutations and state changes.
	eventManager.Subscribe(event.TypeHighlightToggled, appInstance.handleMarksChanged)
	eventManager.Subscribe(event.TypeMarksApplied, appInstance.handleMarksChanged)
	eventManager.Subscribe(event.TypeSelectionChanged, appInstance.handleSelectionChangedForStatus)
	eventManager.Subscribe(event.TypeDocSaved, appInstance.handleDocSavedForStatus)
	eventManager.Subscribe(event.TypeThemeChanged, appInstance.handleThemeChanged)

	appInstance.loadSidecarMarks()
	appInstance.syncMarks()

	eventManager.Dispatch(event.TypeDocLoaded, event.DocLoadedData{
		Path:  document.FilePath(),
		Runes: session.Index().Len(),
	})

	return appInstance, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("marque - v select | Enter mark | / find | o source | Ctrl+S save | q quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop handles TUI events, delegating key events to ModeHandler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true

		case *tcell.EventKey:
			// Delegate ALL key handling to ModeHandler
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	viewHeight := height - a.cfg.View.StatusBarHeight
	if viewHeight < 0 {
		viewHeight = 0
	}
	a.viewPane.SetSize(width, viewHeight)

	a.tuiManager.Clear()
	a.viewPane.Draw(a.tuiManager, a.activeTheme)
	a.statusBar.Draw(screen, width, height, a.activeTheme)
	a.viewPane.DrawCursor(a.tuiManager)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current state to the status bar component.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetDocInfo(a.document.FilePath(), a.session.Index().Len())

	caret := a.viewPane.Caret()
	row, col := a.viewPane.Layout().PositionFor(caret)
	a.statusBar.SetCaretInfo(caret, row+1, col+1)

	a.statusBar.SetMarkInfo(a.markCount, a.modeHandler.GetActiveLabel())
	a.statusBar.SetFindInfo(a.findMgr.Term(), len(a.findMgr.Matches()))

	paneMode := ""
	if a.sourceMode {
		paneMode = "SOURCE"
	}
	a.statusBar.SetPaneMode(paneMode)

	// Prompt modes own the status line while they are active.
	switch a.modeHandler.GetCurrentMode() {
	case modehandler.ModeFind:
		a.statusBar.SetTemporaryMessage("/%s", a.modeHandler.GetFindBuffer())
	case modehandler.ModeLabel:
		a.statusBar.SetTemporaryMessage("Label: %s", a.modeHandler.GetLabelBuffer())
	}
}

// loadSidecarMarks re-applies highlight tokens persisted next to the
// document on a previous save.
func (a *App) loadSidecarMarks() {
	tokens, err := a.document.LoadSidecar()
	if err != nil {
		logger.Warnf("app: reading sidecar marks: %v", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	label := a.cfg.Highlight.DefaultLabel
	addrs := a.session.Deserialize(tokens)
	applied := 0
	for _, addr := range addrs {
		if _, err := addr.Highlight(label); err != nil {
			logger.Warnf("app: applying sidecar token %s: %v", addr, err)
			continue
		}
		applied++
	}
	a.session.Refresh()

	a.eventManager.Dispatch(event.TypeMarksApplied, event.MarksAppliedData{
		Path:    a.document.SidecarPath(),
		Applied: applied,
		Dropped: len(tokens) - applied,
	})
	logger.Infof("app: applied %d of %d sidecar marks", applied, len(tokens))
}

// syncMarks walks the tree for marker containers and projects them onto
// the document pane as styled regions.
func (a *App) syncMarks() {
	a.markCount = len(a.session.Highlights())
	if a.sourceMode {
		// The source pane shows raw markup; regions belong to the
		// document pane and get rebuilt on the way back.
		return
	}

	var regions []view.Region
	for _, m := range marque.MarkersUnder(a.document.Root()) {
		addr, ok := a.session.NodeAddress(m)
		if !ok {
			continue
		}
		label := ""
		if classes := m.Classes(); len(classes) > 0 {
			label = classes[0]
		}
		regions = append(regions, view.Region{Start: addr.Start(), End: addr.End(), Label: label})
	}
	a.viewPane.SetRegions(regions)
}

// toggleSourcePane switches the view between the flattened document and
// its raw markup. Returns the new pane mode, "" for the document pane.
func (a *App) toggleSourcePane() string {
	if a.sourceMode {
		a.sourceMode = false
		a.findMgr.Clear()
		a.viewPane.SetLineStyles(nil)
		a.viewPane.SetMatches(nil)
		a.viewPane.SetContent(a.session.Content())
		a.syncMarks()
		a.viewPane.ClearSelection()
		a.viewPane.SetCaret(a.cursorMgr.Offset())
		return ""
	}

	src, err := a.document.Render()
	if err != nil {
		logger.Errorf("app: rendering source: %v", err)
		a.statusBar.SetTemporaryMessage("Source render failed: %v", err)
		return ""
	}

	a.sourceMode = true
	a.findMgr.Clear()
	a.viewPane.SetRegions(nil)
	a.viewPane.ClearSelection()
	a.viewPane.SetMatches(nil)
	a.viewPane.SetContent(src)
	a.viewPane.SetCaret(0)
	if a.sourceHl != nil {
		styles, err := a.sourceHl.Highlight([]byte(src))
		if err != nil {
			logger.Warnf("app: source highlight: %v", err)
		} else {
			a.viewPane.SetLineStyles(styles)
		}
	}
	return "SOURCE"
}

// cycleTheme activates the next loaded theme and returns its name.
func (a *App) cycleTheme() string {
	t := a.themeManager.Cycle()
	a.activeTheme = t
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: t.Name})
	return t.Name
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
