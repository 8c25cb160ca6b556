// Package statusbar renders the bottom status line: document path, caret
// position, mark count and active label, find state and transient messages.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/marque/internal/config"
	"github.com/bethropolis/marque/internal/theme"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style
	StyleFindInput tcell.Style
	StyleMarks     tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig pulls styles from the active theme.
func DefaultConfig() Config {
	th := theme.GetCurrentTheme()
	return Config{
		StyleDefault:   th.GetStyle("StatusBar"),
		StyleMessage:   th.GetStyle("StatusBarMessage"),
		StyleFindInput: th.GetStyle("StatusBarFind"),
		StyleMarks:     th.GetStyle("StatusBarMarks"),
		MessageTimeout: config.MessageTimeout,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	docPath    string
	totalRunes int
	caretOff   int
	caretRow   int
	caretCol   int
	markCount  int
	label      string
	findTerm   string
	findCount  int
	paneMode   string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(cfg Config) *StatusBar {
	return &StatusBar{config: cfg}
}

// SetDocInfo updates the document path and total rune count.
func (sb *StatusBar) SetDocInfo(path string, runes int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.docPath = path
	sb.totalRunes = runes
}

// SetCaretInfo updates the caret offset and its row/column in the layout.
func (sb *StatusBar) SetCaretInfo(offset, row, col int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.caretOff = offset
	sb.caretRow = row
	sb.caretCol = col
}

// SetMarkInfo updates the highlight count and the active label.
func (sb *StatusBar) SetMarkInfo(count int, label string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.markCount = count
	sb.label = label
}

// SetFindInfo updates the displayed search term and its match count. An
// empty term hides the segment.
func (sb *StatusBar) SetFindInfo(term string, matches int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.findTerm = term
	sb.findCount = matches
}

// SetPaneMode updates the displayed pane indicator (empty for the text pane).
func (sb *StatusBar) SetPaneMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.paneMode = mode
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// getDefaultDisplayText builds the left-hand status text. Callers hold the
// lock.
func (sb *StatusBar) getDefaultDisplayText() string {
	path := sb.docPath
	if path == "" {
		path = "[No Document]"
	}
	text := fmt.Sprintf("%s -- Off: %d (Ln %d, Col %d / %d runes)",
		path, sb.caretOff, sb.caretRow+1, sb.caretCol+1, sb.totalRunes)
	if sb.findTerm != "" {
		text += fmt.Sprintf(" -- /%s (%d)", sb.findTerm, sb.findCount)
	}
	if sb.paneMode != "" {
		text += fmt.Sprintf(" -- %s", sb.paneMode)
	}
	return text
}

// getMarksDisplayText builds the right-hand marks segment. Callers hold the
// lock.
func (sb *StatusBar) getMarksDisplayText() string {
	if sb.label == "" {
		return fmt.Sprintf("%d marks", sb.markCount)
	}
	return fmt.Sprintf("%d marks [%s]", sb.markCount, sb.label)
}

// Draw renders the status bar onto the last screen line. A non-nil theme
// overrides the configured styles, so theme switches take effect without
// rebuilding the bar.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	styleDefault := sb.config.StyleDefault
	styleMessage := sb.config.StyleMessage
	styleFind := sb.config.StyleFindInput
	styleMarks := sb.config.StyleMarks
	if activeTheme != nil {
		styleDefault = activeTheme.GetStyle("StatusBar")
		styleMessage = activeTheme.GetStyle("StatusBarMessage")
		styleFind = activeTheme.GetStyle("StatusBarFind")
		styleMarks = activeTheme.GetStyle("StatusBarMarks")
	}

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	isFindInput := isTempMsgActive && len(sb.tempMessage) > 0 && sb.tempMessage[0] == '/'

	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var style tcell.Style
	var text, marksText string

	if isTempMsgActive {
		text = sb.tempMessage
		if isFindInput {
			style = styleFind
		} else {
			style = styleMessage
		}
	} else {
		text = sb.getDefaultDisplayText()
		marksText = sb.getMarksDisplayText()
		style = styleDefault
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	rightEdge := width
	if marksText != "" {
		marksWidth := uniseg.StringWidth(marksText)
		marksX := width - marksWidth
		if marksX > 0 {
			drawText(screen, marksX, y, width, styleMarks, marksText)
			rightEdge = marksX - 1
		}
	}
	drawText(screen, 0, y, rightEdge, style, text)
}

// drawText draws text at (x, y), stopping before maxX.
func drawText(screen tcell.Screen, x, y, maxX int, style tcell.Style, text string) {
	gr := uniseg.NewGraphemes(text)
	currentX := x
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
