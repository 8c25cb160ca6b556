package marque

import "github.com/bethropolis/marque/dom"

// Highlight toggles label over the address's range by mutating the tree:
// uncovered text gets wrapped in marker containers, text already carrying the
// label gets it removed, markers are split so the toggle applies to exactly
// this range. Returns the marker containers the call created; an empty result
// means the net effect was an unwrap. Applying the same label to the same
// range twice restores a content-equivalent tree.
//
// The tree mutates, so any Index captured before the call is stale afterwards.
func (a Address) Highlight(label string) ([]*dom.Node, error) {
	if label == "" || a.root == nil {
		return nil, nil
	}
	scope := normalizeScope(a.root)

	var atoms []Address
	if a.root.IsLeaf() && a.start == 0 && a.end == a.root.Len() {
		atoms = []Address{a}
	} else {
		// Partial and composite ranges materialize their boundaries first.
		atoms = a.Atoms()
		if len(atoms) == 0 {
			return nil, nil
		}
	}

	var created []*dom.Node
	for _, atom := range atoms {
		ms, err := atom.highlightAtom(label)
		if err != nil {
			return created, err
		}
		created = append(created, ms...)
	}
	// One normalize pass at the end; running it between atoms could merge a
	// later atom's leaf away before its toggle runs.
	if scope != nil {
		scope.Normalize()
	}
	return created, nil
}

// normalizeScope picks the container to normalize once the toggle is done,
// captured before any mutation: the root itself for composite ranges, the
// enclosing container (above the marker, if the leaf is wrapped) for
// leaf-rooted ones.
func normalizeScope(n *dom.Node) *dom.Node {
	if !n.IsLeaf() {
		return n
	}
	p := n.Parent()
	if p == nil {
		return nil
	}
	if IsMarker(p) && p.Parent() != nil {
		return p.Parent()
	}
	return p
}

// highlightAtom toggles label for an address spanning one whole leaf. The
// three cases: wrap a bare leaf, toggle on a marker's sole leaf, split a
// marker wrapping the leaf plus siblings.
func (a Address) highlightAtom(label string) ([]*dom.Node, error) {
	leaf := a.root
	parent := leaf.Parent()
	if parent == nil {
		return nil, ErrMarkerInvariant
	}
	if !IsMarker(parent) {
		marker := NewMarker(label)
		if err := leaf.ReplaceWith(marker); err != nil {
			return nil, err
		}
		marker.Append(leaf)
		return []*dom.Node{marker}, nil
	}
	if IsMarker(parent.Parent()) || len(parent.Classes()) == 0 {
		return nil, ErrMarkerInvariant
	}
	if parent.ChildCount() == 1 {
		return toggleSoleChild(parent, leaf, label)
	}
	return splitMarker(parent, leaf, label)
}

// toggleSoleChild applies the single-child rule: an absent label is added to
// the marker, the last label unwraps the marker, a label among others is
// dropped from the set.
func toggleSoleChild(marker, leaf *dom.Node, label string) ([]*dom.Node, error) {
	if !marker.HasClass(label) {
		marker.AddClass(label)
		return []*dom.Node{marker}, nil
	}
	if len(marker.Classes()) == 1 {
		if err := marker.ReplaceWith(leaf); err != nil {
			return nil, err
		}
		return nil, nil
	}
	marker.RemoveClass(label)
	return nil, nil
}

// splitMarker toggles label on one leaf of a marker wrapping the leaf plus
// siblings. The marker splits into up to three regions: leaves before keep
// the original marker (which is dropped when that region is empty), the leaf
// itself re-enters with the toggled label set, leaves after move into a fresh
// marker carrying the original labels.
func splitMarker(marker, leaf *dom.Node, label string) ([]*dom.Node, error) {
	grand := marker.Parent()
	if grand == nil {
		return nil, ErrMarkerInvariant
	}
	labels := marker.Classes()
	idx := leaf.ChildIndex()

	children := marker.Children()
	after := make([]*dom.Node, len(children)-idx-1)
	copy(after, children[idx+1:])
	beforeCount := idx

	for _, c := range after {
		c.Remove()
	}
	leaf.Remove()

	var created []*dom.Node
	middle := leaf
	switch {
	case hasLabel(labels, label) && len(labels) == 1:
		// toggled off entirely: the leaf goes back in bare
	case hasLabel(labels, label):
		m := NewMarker(withoutLabel(labels, label)...)
		m.Append(leaf)
		middle = m
		created = append(created, m)
	default:
		m := NewMarker(append(copyLabels(labels), label)...)
		m.Append(leaf)
		middle = m
		created = append(created, m)
	}

	if beforeCount == 0 {
		if err := marker.ReplaceWith(middle); err != nil {
			return created, err
		}
	} else {
		if err := grand.InsertAfter(middle, marker); err != nil {
			return created, err
		}
	}
	if len(after) > 0 {
		am := NewMarker(labels...)
		am.Append(after...)
		if err := grand.InsertAfter(am, middle); err != nil {
			return created, err
		}
		created = append(created, am)
	}
	return created, nil
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

func withoutLabel(labels []string, label string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != label {
			out = append(out, l)
		}
	}
	return out
}

func copyLabels(labels []string) []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}
