package marque

import "errors"

// Errors reported by addressing and highlight operations. Ordinary absence of
// a match keeps the comma-ok form (Index.NodeAddress, Index.LeafAt); these
// sentinels cover the failure modes callers branch on.
var (
	// ErrNoMatchingLeaf is returned when a decomposition cannot find a leaf
	// covering a required boundary, e.g. an empty root.
	ErrNoMatchingLeaf = errors.New("no leaf covers the requested boundary")

	// ErrOutOfBounds is returned when a range does not fit the coordinate
	// space it is being translated or materialized into.
	ErrOutOfBounds = errors.New("range not contained by target coordinate space")

	// ErrRootMismatch is returned when two addresses that must share a root
	// do not.
	ErrRootMismatch = errors.New("addresses have different roots")

	// ErrNotLeaf is returned when a leaf-only operation is invoked on an
	// address whose root is a container.
	ErrNotLeaf = errors.New("address root is not a leaf")

	// ErrEmptyRange is returned when a zero-width range cannot be
	// materialized as a leaf of its own.
	ErrEmptyRange = errors.New("zero-width range cannot be materialized")

	// ErrUnknownNode is returned when a node is not present in the index
	// being consulted.
	ErrUnknownNode = errors.New("node not present in index")

	// ErrNoSelection is returned when no selection provider is attached or
	// the host reports no active selection.
	ErrNoSelection = errors.New("no selection available")

	// ErrMarkerInvariant is returned when the tree violates the marker
	// structure the highlight engine assumes, e.g. nested markers or a
	// detached atom.
	ErrMarkerInvariant = errors.New("marker tree invariant violated")

	// ErrBadToken is returned when a serialized highlight token cannot be
	// parsed.
	ErrBadToken = errors.New("malformed highlight token")
)
