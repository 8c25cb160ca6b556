// Package cursor tracks the caret and anchor in the flattened coordinate
// space and bridges them to the document engine's selection contract.
package cursor

import (
	"github.com/bethropolis/marque"
)

// Indexer is the slice of the document session the manager needs: the
// current coordinate index.
type Indexer interface {
	Index() *marque.Index
}

// Manager holds the caret offset and the selection anchor. Offsets are
// rune offsets into the flattened content; the manager clamps them so the
// caret can sit anywhere in [0, Len].
type Manager struct {
	session   Indexer
	offset    int
	anchor    int
	selecting bool
}

// NewManager creates a manager with the caret at the start.
func NewManager(session Indexer) *Manager {
	return &Manager{session: session}
}

func (m *Manager) total() int {
	return m.session.Index().Len()
}

// Offset returns the caret's rune offset.
func (m *Manager) Offset() int { return m.offset }

// SetOffset moves the caret, clamping to the content bounds. While a
// selection is active the anchor stays put and the selection extends.
func (m *Manager) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if t := m.total(); offset > t {
		offset = t
	}
	m.offset = offset
}

// Move shifts the caret by delta runes.
func (m *Manager) Move(delta int) {
	m.SetOffset(m.offset + delta)
}

// MoveToStart places the caret at offset zero.
func (m *Manager) MoveToStart() { m.SetOffset(0) }

// MoveToEnd places the caret after the last rune.
func (m *Manager) MoveToEnd() { m.SetOffset(m.total()) }

// StartSelection anchors a selection at the caret if none is active.
// Call it before the movement that extends the selection.
func (m *Manager) StartSelection() {
	if !m.selecting {
		m.anchor = m.offset
		m.selecting = true
	}
}

// ClearSelection drops the selection, leaving the caret where it is.
func (m *Manager) ClearSelection() {
	m.selecting = false
	m.anchor = m.offset
}

// IsSelecting reports whether a selection anchor is active, even while the
// selection is still empty.
func (m *Manager) IsSelecting() bool { return m.selecting }

// HasSelection reports whether a non-empty selection is active.
func (m *Manager) HasSelection() bool {
	return m.selecting && m.anchor != m.offset
}

// SelectionRange returns the normalized selection, or false when none is
// active.
func (m *Manager) SelectionRange() (start, end int, ok bool) {
	if !m.HasSelection() {
		return 0, 0, false
	}
	start, end = m.anchor, m.offset
	if end < start {
		start, end = end, start
	}
	return start, end, true
}

// SelectRange replaces the selection with an explicit range and parks the
// caret at its end. Both endpoints clamp to the content bounds.
func (m *Manager) SelectRange(start, end int) {
	if end < start {
		start, end = end, start
	}
	m.SetOffset(start)
	m.anchor = m.offset
	m.SetOffset(end)
	m.selecting = true
}

// ReadSelection reports the active selection, or the caret as a
// degenerate one, resolved onto content leaves. Returns false only when
// the document has no content leaves to resolve against.
func (m *Manager) ReadSelection() (marque.Selection, bool) {
	start, end, ok := m.SelectionRange()
	if !ok {
		start, end = m.offset, m.offset
	}

	ix := m.session.Index()
	startNode, startLocal, ok := ix.LeafAt(start)
	if !ok {
		return marque.Selection{}, false
	}
	endNode, endLocal, ok := ix.LeafAt(end)
	if !ok {
		return marque.Selection{}, false
	}

	return marque.Selection{
		StartNode:   startNode,
		StartOffset: startLocal,
		EndNode:     endNode,
		EndOffset:   endLocal,
	}, true
}

// WriteSelection adopts a leaf-anchored selection, flattening it back
// into offsets through the current index.
func (m *Manager) WriteSelection(sel marque.Selection) error {
	ix := m.session.Index()

	startAddr, ok := ix.NodeAddress(sel.StartNode)
	if !ok {
		return marque.ErrUnknownNode
	}
	endAddr, ok := ix.NodeAddress(sel.EndNode)
	if !ok {
		return marque.ErrUnknownNode
	}

	m.SelectRange(startAddr.Start()+sel.StartOffset, endAddr.Start()+sel.EndOffset)
	return nil
}
