// Package event carries the application's internal publish/subscribe bus.
package event

import (
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document lifecycle
	TypeDocLoaded    // fired after a document parses successfully
	TypeDocSaved     // fired after the document and its marks are written out
	TypeMarksApplied // fired after sidecar tokens are deserialized onto the tree

	// Session state
	TypeIndexRefreshed   // fired when the coordinate index is rebuilt
	TypeSelectionChanged // fired when the selection endpoints move
	TypeHighlightToggled // fired after a highlight pass over a range

	// Search
	TypeFindExecuted // fired after a find run over the flattened content

	// Input
	TypeKeyPressed // raw key press forwarded to subscribers

	// Application lifecycle
	TypeAppReady // fired when the application is fully initialized
	TypeAppQuit  // fired just before termination begins

	TypeThemeChanged // fired when the active theme changes
)

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocLoadedData describes a freshly parsed document.
type DocLoadedData struct {
	Path  string
	Runes int
}

// DocSavedData describes a completed save, including how many highlight
// tokens went into the sidecar file.
type DocSavedData struct {
	Path  string
	Marks int
}

// MarksAppliedData reports the outcome of loading a sidecar file.
type MarksAppliedData struct {
	Path    string
	Applied int
	Dropped int
}

// IndexRefreshedData carries the size of the rebuilt coordinate space.
type IndexRefreshedData struct {
	Runes int
}

// SelectionChangedData carries the new flat selection endpoints.
type SelectionChangedData struct {
	Start int
	End   int
}

// HighlightToggledData describes a highlight pass over a range.
type HighlightToggledData struct {
	Label   string
	Start   int
	End     int
	Created int
}

// FindExecutedData reports a search run.
type FindExecutedData struct {
	Query   string
	Matches int
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppReadyData is currently empty.
type AppReadyData struct{}

// AppQuitData is currently empty.
type AppQuitData struct{}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}
