package marque

import (
	"sort"
	"strings"

	"github.com/bethropolis/marque/dom"
)

// Index is a snapshot of one flattening pass over a subtree: the flattened
// content, an Address for every visited node, and the ordered non-zero-width
// leaves. It is positional and becomes stale the moment the tree mutates;
// rebuild it instead of retaining it across mutations.
type Index struct {
	// Pointer spans the whole indexed subtree.
	Pointer Address

	lookup  map[*dom.Node]Address
	leaves  []leafSpan
	content string
}

// leafSpan records where a non-zero-width leaf landed in the flattened space.
type leafSpan struct {
	node       *dom.Node
	start, end int
}

// traversalMode controls whether text contributes to the flattened content.
type traversalMode uint8

const (
	modeTransparent traversalMode = iota
	modeOpaque
)

// effectiveMode derives a node's traversal mode from its own type attribute
// and the inherited mode. Blackbox applies to containers only; signpost only
// re-opens an already opaque region.
func effectiveMode(n *dom.Node, inherited traversalMode) traversalMode {
	switch n.AttrOr(TypeAttr, "") {
	case TypeSignpost:
		if inherited == modeOpaque {
			return modeTransparent
		}
	case TypeBlackbox:
		if n.Kind() == dom.KindContainer {
			return modeOpaque
		}
	}
	return inherited
}

// indexWalker accumulates one flattening pass.
type indexWalker struct {
	root    *dom.Node
	lookup  map[*dom.Node]Address
	leaves  []leafSpan
	content strings.Builder
}

// NewIndex flattens the subtree rooted at root into a fresh Index by a
// left-to-right depth-first visit. Indexing the same unmutated tree twice
// yields identical results.
func NewIndex(root *dom.Node) *Index {
	w := &indexWalker{root: root, lookup: make(map[*dom.Node]Address)}
	end := w.visit(root, 0, modeTransparent)
	return &Index{
		Pointer: NewAddress(root, 0, end, BiasNeither),
		lookup:  w.lookup,
		leaves:  w.leaves,
		content: w.content.String(),
	}
}

// visit indexes n at the given running offset and returns the offset after
// n's contribution. Every visited node gets a lookup entry, opaque ones with
// zero width.
func (w *indexWalker) visit(n *dom.Node, offset int, mode traversalMode) int {
	mode = effectiveMode(n, mode)
	start := offset
	switch n.Kind() {
	case dom.KindText:
		if mode == modeTransparent && n.Len() > 0 {
			w.content.WriteString(n.Text())
			offset += n.Len()
			w.leaves = append(w.leaves, leafSpan{node: n, start: start, end: offset})
		}
	case dom.KindVoid:
		// zero width in every mode
	case dom.KindContainer:
		for _, c := range n.Children() {
			offset = w.visit(c, offset, mode)
		}
	}
	w.lookup[n] = NewAddress(w.root, start, offset, BiasNeither)
	return offset
}

// Content returns the flattened text of the indexed subtree.
func (ix *Index) Content() string { return ix.content }

// Len returns the flattened content length in runes.
func (ix *Index) Len() int { return ix.Pointer.Width() }

// NodeAddress returns the Address a node occupies in this pass, or false when
// the node was not part of the indexed subtree.
func (ix *Index) NodeAddress(n *dom.Node) (Address, bool) {
	a, ok := ix.lookup[n]
	return a, ok
}

// LeafAt resolves a flat position to the non-zero-width leaf containing it
// plus the leaf-local offset. Position Len() resolves to the end of the last
// leaf. Returns false when the subtree has no such leaves or the position is
// outside [0, Len()].
func (ix *Index) LeafAt(pos int) (*dom.Node, int, bool) {
	if len(ix.leaves) == 0 || pos < 0 || pos > ix.Len() {
		return nil, 0, false
	}
	span := ix.leaves[ix.leafIndexAt(pos)]
	return span.node, pos - span.start, true
}

// leafIndexAt returns the index of the last leaf starting at or before pos.
// Valid only when leaves is non-empty; the first leaf starts at 0, so the
// result is always in range for pos >= 0.
func (ix *Index) leafIndexAt(pos int) int {
	i := sort.Search(len(ix.leaves), func(i int) bool {
		return ix.leaves[i].start > pos
	}) - 1
	if i < 0 {
		i = 0
	}
	return i
}
