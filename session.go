package marque

import "github.com/bethropolis/marque/dom"

// Selection is a host-reported selection: endpoint nodes with node-local
// offsets, start before end in document order.
type Selection struct {
	StartNode   *dom.Node
	StartOffset int
	EndNode     *dom.Node
	EndOffset   int
}

// SelectionProvider is the host collaborator supplying the active user
// selection and accepting computed ones. The embedding application injects an
// implementation; with a nil provider the selection operations return
// ErrNoSelection.
type SelectionProvider interface {
	// ReadSelection returns the active selection, or false when there is none.
	ReadSelection() (Selection, bool)
	// WriteSelection replaces the active selection with a concrete span over
	// leaf boundaries.
	WriteSelection(Selection) error
}

// Session owns one root and a cached Index over it. The cache is rebuilt by
// Refresh and must be refreshed after any tree mutation, including Highlight
// calls, before further lookups. Sessions are not safe for concurrent use.
type Session struct {
	root  *dom.Node
	sel   SelectionProvider
	index *Index
}

// NewSession indexes root and returns a facade over it. sel may be nil.
func NewSession(root *dom.Node, sel SelectionProvider) *Session {
	s := &Session{root: root, sel: sel}
	s.Refresh()
	return s
}

// Root returns the session root.
func (s *Session) Root() *dom.Node { return s.root }

// Index returns the cached index snapshot.
func (s *Session) Index() *Index { return s.index }

// Content returns the cached flattened content.
func (s *Session) Content() string { return s.index.Content() }

// Refresh re-indexes the root, replacing the cached snapshot.
func (s *Session) Refresh() { s.index = NewIndex(s.root) }

// NodeAddress returns the address a node occupied at the last refresh, or
// false for nodes that were not part of the tree then.
func (s *Session) NodeAddress(n *dom.Node) (Address, bool) {
	return s.index.NodeAddress(n)
}

// Union merges addresses sharing one root into a minimal ordered list of
// non-overlapping, non-adjacent ranges. Mixed-root input is returned
// unmodified.
func (s *Session) Union(addrs []Address) []Address { return Union(addrs) }

// Selection reads the host selection and converts it into an address over the
// session root. Host-reported offsets are clamped to each endpoint node's own
// span; a degenerate end offset of zero marks the range right-biased.
func (s *Session) Selection() (Address, error) {
	if s.sel == nil {
		return Address{}, ErrNoSelection
	}
	raw, ok := s.sel.ReadSelection()
	if !ok {
		return Address{}, ErrNoSelection
	}
	start, err := s.flattenEndpoint(raw.StartNode, raw.StartOffset)
	if err != nil {
		return Address{}, err
	}
	end, err := s.flattenEndpoint(raw.EndNode, raw.EndOffset)
	if err != nil {
		return Address{}, err
	}
	bias := BiasNeither
	if raw.EndOffset == 0 {
		bias = BiasRight
	}
	if end < start {
		start, end = end, start
	}
	return NewAddress(s.root, start, end, bias), nil
}

// flattenEndpoint converts one endpoint through the cached lookup, clamping
// the node-local offset to the node's own span.
func (s *Session) flattenEndpoint(n *dom.Node, offset int) (int, error) {
	if n == nil {
		return 0, ErrNoSelection
	}
	addr, ok := s.index.NodeAddress(n)
	if !ok {
		return 0, ErrUnknownNode
	}
	if offset < 0 {
		offset = 0
	}
	if w := addr.Width(); offset > w {
		offset = w
	}
	return addr.start + offset, nil
}

// Select decomposes the address to leaves and hands the provider a concrete
// span from the first leaf's start to the last leaf's end.
func (s *Session) Select(a Address) error {
	if s.sel == nil {
		return ErrNoSelection
	}
	pieces, err := a.Leaves()
	if err != nil {
		return err
	}
	if len(pieces) == 0 {
		return ErrNoMatchingLeaf
	}
	first, last := pieces[0], pieces[len(pieces)-1]
	return s.sel.WriteSelection(Selection{
		StartNode:   first.root,
		StartOffset: first.start,
		EndNode:     last.root,
		EndOffset:   last.end,
	})
}

// Highlights refreshes the cache, collects every marker container under the
// root and returns the union of their addresses.
func (s *Session) Highlights() []Address {
	s.Refresh()
	var addrs []Address
	for _, m := range MarkersUnder(s.root) {
		if a, ok := s.index.NodeAddress(m); ok {
			addrs = append(addrs, a)
		}
	}
	return Union(addrs)
}

// stableRoot resolves the document-level root tokens are expressed against:
// the nearest enclosing container tagged StableRootTag, falling back to the
// outermost ancestor.
func (s *Session) stableRoot() *dom.Node {
	top := s.root
	for n := s.root; n != nil; n = n.Parent() {
		if n.Kind() == dom.KindContainer && n.Tag() == StableRootTag {
			return n
		}
		top = n
	}
	return top
}

// Serialize emits one portable token per highlighted region, rebased onto the
// stable document root. Regions the stable root does not contain are dropped.
func (s *Session) Serialize() []string {
	stable := s.stableRoot()
	var tokens []string
	for _, a := range s.Highlights() {
		r, err := a.Rebase(stable, stable)
		if err != nil {
			continue
		}
		tokens = append(tokens, FormatToken(r))
	}
	return tokens
}

// Deserialize parses tokens and rebases each onto the session root, returning
// the survivors. Unparseable tokens and failed rebases are dropped.
func (s *Session) Deserialize(tokens []string) []Address {
	stable := s.stableRoot()
	var out []Address
	for _, t := range tokens {
		start, end, err := ParseToken(t)
		if err != nil {
			continue
		}
		r, err := NewAddress(stable, start, end, BiasNeither).Rebase(s.root, stable)
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}
