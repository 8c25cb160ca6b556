// Package dom implements the ordered content tree the addressing engine works
// on: text leaves carrying a string payload, void leaves with no content, and
// containers with ordered children and a string attribute bag. It also provides
// the structural mutations the highlight engine needs (splitting text leaves,
// splicing nodes among siblings, normalizing adjacent text).
package dom

import (
	"strings"
	"unicode/utf8"
)

// Kind discriminates the three node shapes. The set is closed; code switching
// on Kind does not need a default arm for unknown kinds.
type Kind uint8

const (
	// KindText is a leaf holding a text payload.
	KindText Kind = iota
	// KindVoid is a leaf with no payload and zero length.
	KindVoid
	// KindContainer holds ordered children and no payload of its own.
	KindContainer
)

// String returns a short lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindVoid:
		return "void"
	case KindContainer:
		return "container"
	}
	return "unknown"
}

// Node is a single node of a content tree. Nodes are identified by pointer:
// two distinct *Node values are distinct nodes even if structurally equal.
// The zero value is not usable; use NewText, NewVoid or NewContainer.
type Node struct {
	kind     Kind
	tag      string // element name for voids and containers
	text     string // payload for text leaves
	attrs    map[string]string
	parent   *Node
	children []*Node
}

// NewText creates a detached text leaf with the given payload.
func NewText(text string) *Node {
	return &Node{kind: KindText, text: text}
}

// NewVoid creates a detached void leaf with the given tag name.
func NewVoid(tag string) *Node {
	return &Node{kind: KindVoid, tag: tag}
}

// NewContainer creates a container with the given tag name and appends the
// given children in order, re-parenting each.
func NewContainer(tag string, children ...*Node) *Node {
	n := &Node{kind: KindContainer, tag: tag}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// Kind reports the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element name. Empty for text leaves.
func (n *Node) Tag() string { return n.tag }

// Text returns the payload of a text leaf, or "" for other kinds.
func (n *Node) Text() string {
	if n.kind != KindText {
		return ""
	}
	return n.text
}

// SetText replaces the payload of a text leaf. No-op on other kinds.
func (n *Node) SetText(s string) {
	if n.kind == KindText {
		n.text = s
	}
}

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's child slice. The slice is owned by the node;
// callers must not modify it directly.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// ChildIndex returns the node's position among its parent's children, or -1
// when the node is detached.
func (n *Node) ChildIndex() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// IsLeaf reports whether the node is a text or void leaf.
func (n *Node) IsLeaf() bool { return n.kind != KindContainer }

// Len returns the node's content length in runes: the payload length for a
// text leaf, zero for a void leaf, and the sum over children for a container.
func (n *Node) Len() int {
	switch n.kind {
	case KindText:
		return utf8.RuneCountInString(n.text)
	case KindVoid:
		return 0
	}
	total := 0
	for _, c := range n.children {
		total += c.Len()
	}
	return total
}

// TextContent concatenates the text of every text leaf in the subtree in
// document order. It ignores traversal opacity; coordinate-aware flattening
// belongs to the indexer.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(d *Node) bool {
		if d.kind == KindText {
			b.WriteString(d.text)
		}
		return true
	})
	return b.String()
}

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// AttrOr returns the value of the named attribute, or def when unset.
func (n *Node) AttrOr(key, def string) string {
	if v, ok := n.attrs[key]; ok {
		return v
	}
	return def
}

// SetAttr sets the named attribute.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// DelAttr removes the named attribute if present.
func (n *Node) DelAttr(key string) {
	delete(n.attrs, key)
}

// Attrs returns a copy of the attribute bag. Never nil.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Walk visits the subtree rooted at n in preorder. Returning false from fn
// skips the node's descendants; the walk itself continues with siblings.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// FindAll returns every node in the subtree (preorder) matching pred.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(d *Node) bool {
		if pred(d) {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Contains reports whether d lies in the subtree rooted at n (inclusive).
func (n *Node) Contains(d *Node) bool {
	for ; d != nil; d = d.parent {
		if d == n {
			return true
		}
	}
	return false
}
