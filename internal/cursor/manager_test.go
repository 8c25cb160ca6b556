package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/marque"
	"github.com/bethropolis/marque/dom"
)

// twoLeafDoc builds body > p > ("abc", "defgh") and a session over it.
func twoLeafDoc(t *testing.T) (*marque.Session, *dom.Node, *dom.Node) {
	t.Helper()
	abc := dom.NewText("abc")
	defgh := dom.NewText("defgh")
	body := dom.NewContainer("body", dom.NewContainer("p", abc, defgh))
	return marque.NewSession(body, nil), abc, defgh
}

func TestManagerClampsOffset(t *testing.T) {
	session, _, _ := twoLeafDoc(t)
	m := NewManager(session)

	m.SetOffset(99)
	assert.Equal(t, 8, m.Offset())
	m.SetOffset(-5)
	assert.Equal(t, 0, m.Offset())
	m.Move(3)
	assert.Equal(t, 3, m.Offset())
	m.MoveToEnd()
	assert.Equal(t, 8, m.Offset())
	m.MoveToStart()
	assert.Equal(t, 0, m.Offset())
}

func TestManagerSelectionFollowsCaret(t *testing.T) {
	session, _, _ := twoLeafDoc(t)
	m := NewManager(session)

	m.SetOffset(2)
	m.StartSelection()
	m.Move(3)

	start, end, ok := m.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)

	// Moving back across the anchor reverses the endpoints.
	m.SetOffset(1)
	start, end, ok = m.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end)

	m.ClearSelection()
	_, _, ok = m.SelectionRange()
	assert.False(t, ok)
}

func TestManagerEmptySelectionNotReported(t *testing.T) {
	session, _, _ := twoLeafDoc(t)
	m := NewManager(session)

	m.SetOffset(4)
	m.StartSelection()
	assert.False(t, m.HasSelection(), "anchor equal to caret is no selection")
}

func TestReadSelectionResolvesLeaves(t *testing.T) {
	session, abc, defgh := twoLeafDoc(t)
	m := NewManager(session)

	m.SelectRange(1, 5)
	sel, ok := m.ReadSelection()
	require.True(t, ok)
	assert.Same(t, abc, sel.StartNode)
	assert.Equal(t, 1, sel.StartOffset)
	assert.Same(t, defgh, sel.EndNode)
	assert.Equal(t, 2, sel.EndOffset)
}

func TestReadSelectionCaretAtLeafBoundary(t *testing.T) {
	session, _, defgh := twoLeafDoc(t)
	m := NewManager(session)

	// A caret on the seam resolves to the following leaf at offset zero,
	// which the session turns into a right-biased address.
	m.SetOffset(3)
	sel, ok := m.ReadSelection()
	require.True(t, ok)
	assert.Same(t, defgh, sel.StartNode)
	assert.Equal(t, 0, sel.StartOffset)
	assert.Same(t, defgh, sel.EndNode)
	assert.Equal(t, 0, sel.EndOffset)
}

func TestReadSelectionEmptyDocument(t *testing.T) {
	body := dom.NewContainer("body")
	session := marque.NewSession(body, nil)
	m := NewManager(session)

	_, ok := m.ReadSelection()
	assert.False(t, ok)
}

func TestWriteSelectionFlattensEndpoints(t *testing.T) {
	session, abc, defgh := twoLeafDoc(t)
	m := NewManager(session)

	err := m.WriteSelection(marque.Selection{
		StartNode:   abc,
		StartOffset: 1,
		EndNode:     defgh,
		EndOffset:   3,
	})
	require.NoError(t, err)

	start, end, ok := m.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 6, end)
	assert.Equal(t, 6, m.Offset())
}

func TestWriteSelectionUnknownNode(t *testing.T) {
	session, _, _ := twoLeafDoc(t)
	m := NewManager(session)

	stranger := dom.NewText("elsewhere")
	err := m.WriteSelection(marque.Selection{StartNode: stranger, EndNode: stranger})
	assert.ErrorIs(t, err, marque.ErrUnknownNode)
}

func TestSessionSelectionThroughManager(t *testing.T) {
	abc := dom.NewText("abc")
	defgh := dom.NewText("defgh")
	body := dom.NewContainer("body", dom.NewContainer("p", abc, defgh))

	var m *Manager
	session := marque.NewSession(body, providerFunc(func() *Manager { return m }))
	m = NewManager(session)

	m.SelectRange(1, 5)
	addr, err := session.Selection()
	require.NoError(t, err)
	assert.Equal(t, 1, addr.Start())
	assert.Equal(t, 5, addr.End())
}

// providerFunc defers to a manager resolved at call time, since the
// manager itself needs the session to exist first.
type providerFunc func() *Manager

func (p providerFunc) ReadSelection() (marque.Selection, bool) { return p().ReadSelection() }
func (p providerFunc) WriteSelection(s marque.Selection) error { return p().WriteSelection(s) }
