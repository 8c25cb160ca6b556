package dom

import "errors"

// Errors returned by structural mutations.
var (
	// ErrNotText is returned when a text-only operation hits another kind.
	ErrNotText = errors.New("node is not a text leaf")
	// ErrSplitBounds is returned when a split offset is not strictly inside
	// the leaf's payload.
	ErrSplitBounds = errors.New("split offset outside leaf interior")
	// ErrDetached is returned when an operation needs a parent and the node
	// has none.
	ErrDetached = errors.New("node has no parent")
	// ErrNotChild is returned when a reference node is not a child of the
	// receiver.
	ErrNotChild = errors.New("reference node is not a child")
)

// detach removes n from its parent's child list, if any.
func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := n.ChildIndex(); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// insertAt splices child into n's children at index i, re-parenting it.
func (n *Node) insertAt(i int, child *Node) {
	child.detach()
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
}

// Append adds the given nodes to the end of n's children in order,
// re-parenting each.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		n.insertAt(len(n.children), c)
	}
}

// InsertBefore splices child into n's children immediately before ref.
func (n *Node) InsertBefore(child, ref *Node) error {
	if ref.parent != n {
		return ErrNotChild
	}
	n.insertAt(ref.ChildIndex(), child)
	return nil
}

// InsertAfter splices child into n's children immediately after ref.
func (n *Node) InsertAfter(child, ref *Node) error {
	if ref.parent != n {
		return ErrNotChild
	}
	n.insertAt(ref.ChildIndex()+1, child)
	return nil
}

// ReplaceWith splices repl into the receiver's position among its siblings and
// detaches the receiver. repl may currently live anywhere, including inside
// the receiver (the unwrap case).
func (n *Node) ReplaceWith(repl *Node) error {
	if n.parent == nil {
		return ErrDetached
	}
	if repl == n {
		return nil
	}
	repl.detach()
	p := n.parent
	p.children[n.ChildIndex()] = repl
	repl.parent = p
	n.parent = nil
	return nil
}

// Remove detaches the receiver from its parent. No-op when already detached.
func (n *Node) Remove() {
	n.detach()
}

// SplitText splits a text leaf at the given rune offset, keeping the head in
// place and inserting the remainder as a new text leaf immediately after it.
// Returns the new right-hand leaf. The offset must be strictly inside the
// payload; boundary splits are the caller's no-op.
func (n *Node) SplitText(offset int) (*Node, error) {
	if n.kind != KindText {
		return nil, ErrNotText
	}
	if n.parent == nil {
		return nil, ErrDetached
	}
	runes := []rune(n.text)
	if offset <= 0 || offset >= len(runes) {
		return nil, ErrSplitBounds
	}
	right := NewText(string(runes[offset:]))
	n.text = string(runes[:offset])
	n.parent.insertAt(n.ChildIndex()+1, right)
	return right, nil
}

// Normalize merges runs of adjacent text leaves under every container in the
// subtree into single leaves and removes empty text leaves.
func (n *Node) Normalize() {
	if n.kind != KindContainer {
		return
	}
	for _, c := range n.children {
		c.Normalize()
	}
	var out []*Node
	for _, c := range n.children {
		if c.kind == KindText {
			if c.text == "" {
				c.parent = nil
				continue
			}
			if len(out) > 0 && out[len(out)-1].kind == KindText {
				out[len(out)-1].text += c.text
				c.parent = nil
				continue
			}
		}
		out = append(out, c)
	}
	n.children = out
}

// PruneEmptyText removes empty text leaves among n's immediate children. It
// merges nothing; use Normalize for the full cleanup.
func (n *Node) PruneEmptyText() {
	if n.kind != KindContainer {
		return
	}
	var out []*Node
	for _, c := range n.children {
		if c.kind == KindText && c.text == "" {
			c.parent = nil
			continue
		}
		out = append(out, c)
	}
	n.children = out
}
