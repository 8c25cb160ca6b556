package marque

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/marque/dom"
)

func TestHighlightWrapsBareRange(t *testing.T) {
	p := dom.NewContainer("p", dom.NewText("hello world"))
	body := dom.NewContainer("body", p)

	created, err := NewAddress(p, 0, 5, BiasNeither).Highlight("note")
	require.NoError(t, err)
	require.Len(t, created, 1)

	marker := created[0]
	assert.True(t, IsMarker(marker))
	assert.Equal(t, []string{"note"}, marker.Classes())
	assert.Equal(t, "false", marker.AttrOr("contenteditable", ""))
	assert.Equal(t, "hello", marker.TextContent())
	assert.Equal(t, "hello world", body.TextContent(), "content is preserved")

	ix := NewIndex(body)
	ma, ok := ix.NodeAddress(marker)
	require.True(t, ok)
	assert.Equal(t, 0, ma.Start())
	assert.Equal(t, 5, ma.End())
}

func TestHighlightToggleOffUnwraps(t *testing.T) {
	p := dom.NewContainer("p", dom.NewText("hello world"))
	body := dom.NewContainer("body", p)
	a := NewAddress(p, 0, 5, BiasNeither)

	_, err := a.Highlight("note")
	require.NoError(t, err)
	created, err := a.Highlight("note")
	require.NoError(t, err)

	assert.Empty(t, created, "an unwrap creates nothing")
	assert.Empty(t, MarkersUnder(body))
	assert.Equal(t, "hello world", body.TextContent())
	assert.Equal(t, 1, p.ChildCount(), "adjacent leaves merge back together")
}

func TestHighlightSecondLabelSharesMarker(t *testing.T) {
	p := dom.NewContainer("p", dom.NewText("hello"))
	dom.NewContainer("body", p)
	a := NewAddress(p, 0, 5, BiasNeither)

	_, err := a.Highlight("note")
	require.NoError(t, err)
	created, err := a.Highlight("urgent")
	require.NoError(t, err)

	require.Len(t, created, 1, "the existing marker is extended and returned")
	assert.Equal(t, []string{"note", "urgent"}, created[0].Classes())

	created, err = a.Highlight("urgent")
	require.NoError(t, err)
	assert.Empty(t, created)
	markers := MarkersUnder(p)
	require.Len(t, markers, 1)
	assert.Equal(t, []string{"note"}, markers[0].Classes())
}

func TestHighlightPartialUnhighlight(t *testing.T) {
	marker := NewMarker("y")
	marker.Append(dom.NewText("abcdefgh"))
	body := dom.NewContainer("body", marker)

	created, err := NewAddress(body, 2, 5, BiasNeither).Highlight("y")
	require.NoError(t, err)

	require.Equal(t, 3, body.ChildCount(), "three regions: marked, bare, marked")

	first := body.Children()[0]
	assert.True(t, IsMarker(first))
	assert.Equal(t, []string{"y"}, first.Classes())
	assert.Equal(t, "ab", first.TextContent())

	middle := body.Children()[1]
	assert.Equal(t, dom.KindText, middle.Kind())
	assert.Equal(t, "cde", middle.Text())

	last := body.Children()[2]
	assert.True(t, IsMarker(last))
	assert.Equal(t, []string{"y"}, last.Classes())
	assert.Equal(t, "fgh", last.TextContent())

	assert.Equal(t, "abcdefgh", body.TextContent())
	require.Len(t, created, 1, "only the trailing region needed a fresh marker")
	assert.Equal(t, last, created[0])
}

func TestHighlightPartialLeafRooted(t *testing.T) {
	leaf := dom.NewText("abcdefgh")
	p := dom.NewContainer("p", leaf)
	dom.NewContainer("body", p)

	created, err := NewAddress(leaf, 2, 5, BiasNeither).Highlight("note")
	require.NoError(t, err)
	require.Len(t, created, 1)

	require.Equal(t, 3, p.ChildCount())
	assert.Equal(t, "ab", p.Children()[0].Text())
	assert.True(t, IsMarker(p.Children()[1]))
	assert.Equal(t, "cde", p.Children()[1].TextContent())
	assert.Equal(t, "fgh", p.Children()[2].Text())
}

func TestHighlightDoubleToggleAcrossLeaves(t *testing.T) {
	p1 := dom.NewContainer("p", dom.NewText("abc"))
	p2 := dom.NewContainer("p", dom.NewText("defgh"))
	body := dom.NewContainer("body", p1, p2)
	a := NewAddress(body, 1, 6, BiasNeither)

	created, err := a.Highlight("note")
	require.NoError(t, err)
	assert.Len(t, created, 2, "one marker per paragraph piece")
	assert.Equal(t, "abcdefgh", body.TextContent())

	session := NewSession(body, nil)
	regions := session.Highlights()
	require.Len(t, regions, 1, "adjacent marked pieces union into one region")
	assert.Equal(t, 1, regions[0].Start())
	assert.Equal(t, 6, regions[0].End())

	created, err = a.Highlight("note")
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, MarkersUnder(body))
	assert.Equal(t, "abcdefgh", body.TextContent())
	assert.Equal(t, 1, p1.ChildCount(), "paragraphs normalize back to single leaves")
	assert.Equal(t, 1, p2.ChildCount())
}

func TestHighlightSplitFirstLeafOfMarker(t *testing.T) {
	marker := NewMarker("y")
	marker.Append(dom.NewText("ab"), dom.NewText("cd"))
	body := dom.NewContainer("body", marker)

	created, err := NewAddress(body, 0, 2, BiasNeither).Highlight("y")
	require.NoError(t, err)

	require.Equal(t, 2, body.ChildCount())
	assert.Equal(t, "ab", body.Children()[0].Text(), "the toggled region comes out bare")
	assert.True(t, IsMarker(body.Children()[1]))
	assert.Equal(t, "cd", body.Children()[1].TextContent())
	require.Len(t, created, 1)
	assert.Equal(t, body.Children()[1], created[0])
	assert.Nil(t, marker.Parent(), "an empty before-region drops the original marker")
}

func TestHighlightSplitLastLeafOfMarker(t *testing.T) {
	marker := NewMarker("y")
	marker.Append(dom.NewText("ab"), dom.NewText("cd"))
	body := dom.NewContainer("body", marker)

	created, err := NewAddress(body, 2, 4, BiasNeither).Highlight("y")
	require.NoError(t, err)

	assert.Empty(t, created, "shrinking the original marker creates nothing")
	require.Equal(t, 2, body.ChildCount())
	assert.Equal(t, marker, body.Children()[0], "the original marker keeps the before-region")
	assert.Equal(t, "ab", marker.TextContent())
	assert.Equal(t, "cd", body.Children()[1].Text())
}

func TestHighlightAddLabelToMarkerSlice(t *testing.T) {
	marker := NewMarker("y")
	marker.Append(dom.NewText("ab"), dom.NewText("cd"), dom.NewText("ef"))
	body := dom.NewContainer("body", marker)

	created, err := NewAddress(body, 2, 4, BiasNeither).Highlight("z")
	require.NoError(t, err)

	require.Equal(t, 3, body.ChildCount())
	assert.Equal(t, []string{"y"}, body.Children()[0].Classes())
	assert.Equal(t, "ab", body.Children()[0].TextContent())
	assert.Equal(t, []string{"y", "z"}, body.Children()[1].Classes())
	assert.Equal(t, "cd", body.Children()[1].TextContent())
	assert.Equal(t, []string{"y"}, body.Children()[2].Classes())
	assert.Equal(t, "ef", body.Children()[2].TextContent())
	assert.Len(t, created, 2, "the middle and after regions are new markers")
}

func TestHighlightVoidBetweenPieces(t *testing.T) {
	p := dom.NewContainer("p", dom.NewText("ab"), dom.NewVoid("br"), dom.NewText("cd"))
	body := dom.NewContainer("body", p)

	created, err := NewAddress(p, 0, 4, BiasNeither).Highlight("note")
	require.NoError(t, err)
	assert.Len(t, created, 2, "the void leaf stays outside the markers")
	assert.Equal(t, "abcd", body.TextContent())

	session := NewSession(body, nil)
	regions := session.Highlights()
	require.Len(t, regions, 1)
	assert.Equal(t, 0, regions[0].Start())
	assert.Equal(t, 4, regions[0].End())
}

func TestHighlightZeroWidthNoOp(t *testing.T) {
	p := dom.NewContainer("p", dom.NewText("abc"))

	created, err := NewAddress(p, 1, 1, BiasNeither).Highlight("note")
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, 1, p.ChildCount(), "nothing is mutated")
}

func TestHighlightEmptyLabelNoOp(t *testing.T) {
	p := dom.NewContainer("p", dom.NewText("abc"))

	created, err := NewAddress(p, 0, 3, BiasNeither).Highlight("")
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, MarkersUnder(p))
}

func TestHighlightGuardsNestedMarkers(t *testing.T) {
	leaf := dom.NewText("abc")
	inner := NewMarker("y")
	inner.Append(leaf)
	outer := NewMarker("z")
	outer.Append(inner)
	dom.NewContainer("body", outer)

	_, err := NewAddress(leaf, 0, 3, BiasNeither).Highlight("y")
	assert.ErrorIs(t, err, ErrMarkerInvariant)
}

func TestHighlightGuardsDetachedLeaf(t *testing.T) {
	leaf := dom.NewText("abc")
	_, err := NewAddress(leaf, 0, 3, BiasNeither).Highlight("note")
	assert.ErrorIs(t, err, ErrMarkerInvariant)
}

func TestHighlightGuardsLabellessMarker(t *testing.T) {
	leaf := dom.NewText("abc")
	marker := NewMarker()
	marker.Append(leaf)
	dom.NewContainer("body", marker)

	_, err := NewAddress(leaf, 0, 3, BiasNeither).Highlight("note")
	assert.ErrorIs(t, err, ErrMarkerInvariant)
}
