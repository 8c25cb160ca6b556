package marque

import (
	"fmt"
	"hash/fnv"
	"io"
	"sort"

	"github.com/bethropolis/marque/dom"
)

// Bias marks which boundary of a selection-derived range is the active edge.
// It carries directional caret semantics only; the range algebra ignores it.
type Bias uint8

const (
	// BiasNeither is a plain range with no active edge.
	BiasNeither Bias = iota
	// BiasLeft marks the start boundary active.
	BiasLeft
	// BiasRight marks the end boundary active.
	BiasRight
)

// String returns a short lower-case name for the bias.
func (b Bias) String() string {
	switch b {
	case BiasLeft:
		return "left"
	case BiasRight:
		return "right"
	}
	return "neither"
}

// Address is an immutable half-open range [Start, End) in the flattened
// coordinate space of one root node. Two addresses are comparable only when
// they share the same root identity. The caller maintains the invariant
// 0 <= Start <= End <= root length.
type Address struct {
	root  *dom.Node
	start int
	end   int
	bias  Bias
}

// NewAddress builds an Address over root's flattened space.
func NewAddress(root *dom.Node, start, end int, bias Bias) Address {
	return Address{root: root, start: start, end: end, bias: bias}
}

// Root returns the node whose flattened space the bounds refer to.
func (a Address) Root() *dom.Node { return a.root }

// Start returns the inclusive lower bound.
func (a Address) Start() int { return a.start }

// End returns the exclusive upper bound.
func (a Address) End() int { return a.end }

// Bias returns the active-edge marker.
func (a Address) Bias() Bias { return a.bias }

// Width returns End - Start.
func (a Address) Width() int { return a.end - a.start }

// IsZeroWidth reports whether the range is a caret (Start == End).
func (a Address) IsZeroWidth() bool { return a.start == a.end }

// String renders the address for logs and test failures.
func (a Address) String() string {
	name := "?"
	if a.root != nil {
		name = a.root.Kind().String()
		if t := a.root.Tag(); t != "" {
			name = t
		}
	}
	return fmt.Sprintf("%s[%d-%d)", name, a.start, a.end)
}

// Content re-indexes the root and returns the flattened substring the address
// covers. Callers wanting a cached index should go through a Session.
func (a Address) Content() string {
	ix := NewIndex(a.root)
	return runeSubstring(ix.content, a.start, a.end)
}

// Hash returns a fast FNV-1a digest of Content, for cheap equality and change
// checks. Not cryptographic.
func (a Address) Hash() uint64 {
	h := fnv.New64a()
	io.WriteString(h, a.Content())
	return h.Sum64()
}

// Shift returns a copy with both bounds translated by delta.
func (a Address) Shift(delta int) Address {
	return Address{root: a.root, start: a.start + delta, end: a.end + delta, bias: a.bias}
}

// WithBias returns a copy carrying the given bias.
func (a Address) WithBias(b Bias) Address {
	return Address{root: a.root, start: a.start, end: a.end, bias: b}
}

// Includes reports whether other lies within this address, bounds inclusive.
// Addresses with different roots never include each other.
func (a Address) Includes(other Address) bool {
	if a.root != other.root {
		return false
	}
	return other.start >= a.start && other.end <= a.end
}

// Leaves decomposes the address into a minimal ordered list of leaf-rooted
// addresses covering exactly its range. A leaf-rooted address returns itself;
// a childless container yields nothing. Zero-width addresses anchor to the
// leaf containing the caret. Returns ErrNoMatchingLeaf when a required
// boundary has no covering leaf, e.g. an empty root.
func (a Address) Leaves() ([]Address, error) {
	if a.root == nil {
		return nil, ErrNoMatchingLeaf
	}
	if a.root.IsLeaf() {
		return []Address{a}, nil
	}
	if a.root.ChildCount() == 0 {
		return nil, nil
	}
	ix := NewIndex(a.root)
	if len(ix.leaves) == 0 {
		return nil, ErrNoMatchingLeaf
	}

	if a.IsZeroWidth() {
		span := ix.leaves[ix.leafIndexAt(a.start)]
		local := a.start - span.start
		return []Address{NewAddress(span.node, local, local, a.bias)}, nil
	}

	si := ix.leafIndexAt(a.start)
	ei := sort.Search(len(ix.leaves), func(i int) bool {
		return ix.leaves[i].end >= a.end
	})
	if ei == len(ix.leaves) {
		return nil, ErrNoMatchingLeaf
	}

	if si == ei {
		span := ix.leaves[si]
		return []Address{NewAddress(span.node, a.start-span.start, a.end-span.start, a.bias)}, nil
	}

	out := make([]Address, 0, ei-si+1)
	first := ix.leaves[si]
	out = append(out, NewAddress(first.node, a.start-first.start, first.end-first.start, a.bias))
	for i := si + 1; i < ei; i++ {
		span := ix.leaves[i]
		out = append(out, NewAddress(span.node, 0, span.end-span.start, a.bias))
	}
	last := ix.leaves[ei]
	out = append(out, NewAddress(last.node, 0, a.end-last.start, a.bias))
	return out, nil
}

// Atom materializes the address's boundaries as real split points in the
// tree. An address already spanning its whole leaf returns itself without
// mutating anything; otherwise the leaf is split so the range gets a leaf of
// its own, and the returned address spans that leaf in full. Only defined for
// leaf-rooted addresses. Failure paths mutate nothing.
func (a Address) Atom() (Address, error) {
	if a.root == nil || !a.root.IsLeaf() {
		return Address{}, ErrNotLeaf
	}
	length := a.root.Len()
	if a.start < 0 || a.end > length || a.start > a.end {
		return Address{}, ErrOutOfBounds
	}
	if a.start == 0 && a.end == length {
		return a, nil
	}
	if a.IsZeroWidth() {
		return Address{}, ErrEmptyRange
	}

	target := a.root
	if a.start > 0 {
		right, err := target.SplitText(a.start)
		if err != nil {
			return Address{}, err
		}
		target = right
	}
	width := a.end - a.start
	if width < target.Len() {
		if _, err := target.SplitText(width); err != nil {
			return Address{}, err
		}
	}
	return NewAddress(target, 0, width, a.bias), nil
}

// Atoms decomposes via Leaves and materializes each piece via Atom, dropping
// pieces that cannot be materialized (zero-width anchors, void leaves).
func (a Address) Atoms() []Address {
	pieces, err := a.Leaves()
	if err != nil {
		return nil
	}
	out := make([]Address, 0, len(pieces))
	for _, p := range pieces {
		atom, err := p.Atom()
		if err != nil {
			continue
		}
		out = append(out, atom)
	}
	return out
}

// Rebase translates the address from its own root's coordinate space into
// target's, via the shared ancestor that contains both. Returns
// ErrUnknownNode when either root is not under via, and ErrOutOfBounds when
// target's span does not contain the translated range. Failure paths mutate
// nothing.
func (a Address) Rebase(target, via *dom.Node) (Address, error) {
	ix := NewIndex(via)
	from, ok := ix.NodeAddress(a.root)
	if !ok {
		return Address{}, ErrUnknownNode
	}
	tgt, ok := ix.NodeAddress(target)
	if !ok {
		return Address{}, ErrUnknownNode
	}
	translated := NewAddress(via, a.start+from.start, a.end+from.start, a.bias)
	if !tgt.Includes(translated) {
		return Address{}, ErrOutOfBounds
	}
	return NewAddress(target, translated.start-tgt.start, translated.end-tgt.start, a.bias), nil
}

// Union sorts addresses sharing one root by start and merges overlapping or
// adjacent ranges into a minimal ordered list. Addresses that do not share a
// common root are returned unmodified; mixed-root input is a caller
// simplification, not an error.
func Union(addrs []Address) []Address {
	if len(addrs) < 2 {
		return addrs
	}
	root := addrs[0].root
	for _, a := range addrs[1:] {
		if a.root != root {
			return addrs
		}
	}
	sorted := make([]Address, len(addrs))
	copy(sorted, addrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})
	out := sorted[:1]
	for _, a := range sorted[1:] {
		cur := &out[len(out)-1]
		if cur.end >= a.start {
			if a.end > cur.end {
				cur.end = a.end
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

// runeSubstring returns s[start:end] counted in runes, clamped to s.
func runeSubstring(s string, start, end int) string {
	rs := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(rs) {
		end = len(rs)
	}
	if start >= end {
		return ""
	}
	return string(rs[start:end])
}
