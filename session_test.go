package marque

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/marque/dom"
)

// stubSelection is a scripted SelectionProvider for tests.
type stubSelection struct {
	sel     Selection
	has     bool
	written []Selection
}

func (s *stubSelection) ReadSelection() (Selection, bool) { return s.sel, s.has }

func (s *stubSelection) WriteSelection(sel Selection) error {
	s.written = append(s.written, sel)
	return nil
}

func twoParagraphs() (body, p1, p2, abc, defgh *dom.Node) {
	abc = dom.NewText("abc")
	defgh = dom.NewText("defgh")
	p1 = dom.NewContainer("p", abc)
	p2 = dom.NewContainer("p", defgh)
	body = dom.NewContainer("body", p1, p2)
	return
}

func TestSessionNodeAddress(t *testing.T) {
	body, p1, p2, _, _ := twoParagraphs()
	s := NewSession(body, nil)

	a, ok := s.NodeAddress(p1)
	require.True(t, ok)
	assert.Equal(t, 0, a.Start())
	assert.Equal(t, 3, a.End())

	a, ok = s.NodeAddress(p2)
	require.True(t, ok)
	assert.Equal(t, 3, a.Start())
	assert.Equal(t, 8, a.End())

	_, ok = s.NodeAddress(dom.NewText("stray"))
	assert.False(t, ok)
}

func TestSessionCacheGoesStale(t *testing.T) {
	body, _, _, _, _ := twoParagraphs()
	s := NewSession(body, nil)

	created, err := NewAddress(body, 0, 3, BiasNeither).Highlight("note")
	require.NoError(t, err)
	require.Len(t, created, 1)

	_, ok := s.NodeAddress(created[0])
	assert.False(t, ok, "the cache predates the mutation")

	s.Refresh()
	a, ok := s.NodeAddress(created[0])
	require.True(t, ok)
	assert.Equal(t, 0, a.Start())
	assert.Equal(t, 3, a.End())
}

func TestSessionSelection(t *testing.T) {
	body, _, _, abc, defgh := twoParagraphs()
	stub := &stubSelection{
		sel: Selection{StartNode: abc, StartOffset: 1, EndNode: defgh, EndOffset: 2},
		has: true,
	}
	s := NewSession(body, stub)

	a, err := s.Selection()
	require.NoError(t, err)
	assert.Equal(t, body, a.Root())
	assert.Equal(t, 1, a.Start())
	assert.Equal(t, 5, a.End())
	assert.Equal(t, BiasNeither, a.Bias())
}

func TestSessionSelectionRightBias(t *testing.T) {
	body, _, _, abc, defgh := twoParagraphs()
	stub := &stubSelection{
		sel: Selection{StartNode: abc, StartOffset: 2, EndNode: defgh, EndOffset: 0},
		has: true,
	}
	s := NewSession(body, stub)

	a, err := s.Selection()
	require.NoError(t, err)
	assert.Equal(t, 2, a.Start())
	assert.Equal(t, 3, a.End())
	assert.Equal(t, BiasRight, a.Bias(), "a degenerate end offset marks the range right-biased")
}

func TestSessionSelectionClampsHostOffsets(t *testing.T) {
	body, _, _, abc, defgh := twoParagraphs()
	stub := &stubSelection{
		sel: Selection{StartNode: abc, StartOffset: -4, EndNode: defgh, EndOffset: 99},
		has: true,
	}
	s := NewSession(body, stub)

	a, err := s.Selection()
	require.NoError(t, err)
	assert.Equal(t, 0, a.Start(), "offsets clamp to the node's own span")
	assert.Equal(t, 8, a.End())
}

func TestSessionSelectionReordersEndpoints(t *testing.T) {
	body, _, _, abc, defgh := twoParagraphs()
	stub := &stubSelection{
		sel: Selection{StartNode: defgh, StartOffset: 2, EndNode: abc, EndOffset: 1},
		has: true,
	}
	s := NewSession(body, stub)

	a, err := s.Selection()
	require.NoError(t, err)
	assert.Equal(t, 1, a.Start())
	assert.Equal(t, 5, a.End())
}

func TestSessionSelectionAbsent(t *testing.T) {
	body, _, _, _, _ := twoParagraphs()

	_, err := NewSession(body, nil).Selection()
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = NewSession(body, &stubSelection{has: false}).Selection()
	assert.ErrorIs(t, err, ErrNoSelection)

	stray := dom.NewText("zzz")
	s := NewSession(body, &stubSelection{
		sel: Selection{StartNode: stray, StartOffset: 0, EndNode: stray, EndOffset: 0},
		has: true,
	})
	_, err = s.Selection()
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestSessionSelect(t *testing.T) {
	body, _, _, abc, defgh := twoParagraphs()
	stub := &stubSelection{}
	s := NewSession(body, stub)

	require.NoError(t, s.Select(NewAddress(body, 1, 6, BiasNeither)))
	require.Len(t, stub.written, 1)
	got := stub.written[0]
	assert.Equal(t, abc, got.StartNode)
	assert.Equal(t, 1, got.StartOffset)
	assert.Equal(t, defgh, got.EndNode)
	assert.Equal(t, 3, got.EndOffset)
}

func TestSessionHighlightsUnions(t *testing.T) {
	body, _, _, _, _ := twoParagraphs()
	s := NewSession(body, nil)

	_, err := NewAddress(body, 0, 2, BiasNeither).Highlight("y")
	require.NoError(t, err)
	_, err = NewAddress(body, 5, 7, BiasNeither).Highlight("y")
	require.NoError(t, err)

	regions := s.Highlights()
	require.Len(t, regions, 2)
	assert.Equal(t, 0, regions[0].Start())
	assert.Equal(t, 2, regions[0].End())
	assert.Equal(t, 5, regions[1].Start())
	assert.Equal(t, 7, regions[1].End())
}

func TestSessionSerializeRoundTrip(t *testing.T) {
	body, _, _, _, _ := twoParagraphs()
	s := NewSession(body, nil)

	_, err := NewAddress(body, 1, 6, BiasNeither).Highlight("y")
	require.NoError(t, err)

	tokens := s.Serialize()
	assert.Equal(t, []string{"body:1-6"}, tokens)

	restored := s.Deserialize(tokens)
	require.Len(t, restored, 1)
	assert.Equal(t, body, restored[0].Root())
	assert.Equal(t, 1, restored[0].Start())
	assert.Equal(t, 6, restored[0].End())
}

func TestSessionSerializeFromSubtreeRoot(t *testing.T) {
	_, _, p2, _, _ := twoParagraphs()
	s := NewSession(p2, nil)

	_, err := NewAddress(p2, 1, 3, BiasNeither).Highlight("y")
	require.NoError(t, err)

	tokens := s.Serialize()
	assert.Equal(t, []string{"body:4-6"}, tokens,
		"tokens are expressed against the stable document root")

	restored := s.Deserialize(tokens)
	require.Len(t, restored, 1)
	assert.Equal(t, p2, restored[0].Root())
	assert.Equal(t, 1, restored[0].Start())
	assert.Equal(t, 3, restored[0].End())
}

func TestSessionDeserializeDropsFailures(t *testing.T) {
	_, _, p2, _, _ := twoParagraphs()
	s := NewSession(p2, nil)

	restored := s.Deserialize([]string{
		"body:4-6",    // fine: lands inside p2
		"body:0-2",    // outside p2, rebase fails
		"body:9-2",    // inverted bounds
		"div:1-2",     // wrong root tag
		"body:0-9999", // outside the document
		"garbage",
	})
	require.Len(t, restored, 1)
	assert.Equal(t, 1, restored[0].Start())
	assert.Equal(t, 3, restored[0].End())
}

func TestSessionUnionDelegates(t *testing.T) {
	body, _, _, _, _ := twoParagraphs()
	s := NewSession(body, nil)

	out := s.Union([]Address{
		NewAddress(body, 3, 8, BiasNeither),
		NewAddress(body, 0, 5, BiasNeither),
	})
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Start())
	assert.Equal(t, 8, out[0].End())
}
