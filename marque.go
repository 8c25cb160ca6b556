// Package marque addresses substrings of the text rendered by a content tree
// using flat, recomputable coordinates, and durably marks such substrings by
// wrapping them in highlight marker containers inside the tree.
//
// The Index flattens a subtree into a linear coordinate space while keeping a
// node-to-range lookup. An Address is an immutable half-open range in one
// root's flattened space; it can decompose itself into leaf-local pieces,
// materialize those pieces as real split points, and translate between roots.
// Highlight toggles a label over a range by inserting, merging, splitting and
// removing marker containers. A Session owns a root and a cached Index and
// exposes selection capture, highlight collection and token serialization.
//
// All operations are synchronous and single-threaded; the caller owns the
// ordering of tree mutations and must Refresh a Session after mutating.
package marque

import "github.com/bethropolis/marque/dom"

// Attribute conventions shared with the embedding host.
const (
	// TypeAttr carries a node's traversal role.
	TypeAttr = "type"
	// TypeBlackbox marks a container whose descendants are opaque: they
	// contribute no flattened content and collapse to zero width.
	TypeBlackbox = "blackbox"
	// TypeSignpost marks a subtree that re-enters transparent indexing
	// inside an otherwise opaque region.
	TypeSignpost = "signpost"

	// MarkerAttr flags a container as a highlight marker.
	MarkerAttr = "highlight-marker"
	// StableRootTag names the document-level root that serialized tokens
	// are expressed against.
	StableRootTag = "body"

	markerTag    = "span"
	editableAttr = "contenteditable"
)

// IsMarker reports whether n is a highlight marker container.
func IsMarker(n *dom.Node) bool {
	if n == nil || n.Kind() != dom.KindContainer {
		return false
	}
	return n.AttrOr(MarkerAttr, "") == "true"
}

// NewMarker builds a detached, non-editable marker container carrying the
// given highlight labels.
func NewMarker(labels ...string) *dom.Node {
	m := dom.NewContainer(markerTag)
	m.SetAttr(MarkerAttr, "true")
	m.SetAttr(editableAttr, "false")
	m.SetClasses(labels)
	return m
}

// MarkersUnder returns every marker container in the subtree rooted at n,
// in document order.
func MarkersUnder(n *dom.Node) []*dom.Node {
	return n.FindAll(IsMarker)
}
