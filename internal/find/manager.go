// Package find runs regular expression searches over the flattened
// document content and tracks the match set for navigation.
package find

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/marque/internal/logger"
	"github.com/bethropolis/marque/internal/types"
)

// Manager holds the active search term and its matches. Match spans are
// rune offsets into the content the last Search ran over.
type Manager struct {
	mutex   sync.RWMutex
	term    string
	re      *regexp.Regexp
	matches []types.Span
}

// NewManager creates an empty find manager.
func NewManager() *Manager {
	return &Manager{}
}

// Search compiles term as a regular expression and collects every match
// in content. An empty term clears the match set. Returns the number of
// matches.
func (m *Manager) Search(term, content string) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.term = term
	m.matches = nil
	m.re = nil

	if term == "" {
		return 0, nil
	}

	re, err := regexp.Compile(term)
	if err != nil {
		return 0, fmt.Errorf("invalid search pattern: %w", err)
	}
	m.re = re

	locs := re.FindAllStringIndex(content, -1)
	m.matches = byteSpansToRuneSpans(content, locs)
	logger.DebugTagf("find", "search %q matched %d times", term, len(m.matches))
	return len(m.matches), nil
}

// Term returns the active search term.
func (m *Manager) Term() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.term
}

// Clear drops the term and match set.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.term = ""
	m.re = nil
	m.matches = nil
}

// HasMatches reports whether the last search found anything.
func (m *Manager) HasMatches() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.matches) > 0
}

// Matches returns a copy of the match spans in content order.
func (m *Manager) Matches() []types.Span {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	matches := make([]types.Span, len(m.matches))
	copy(matches, m.matches)
	return matches
}

// Next returns the first match starting after from, wrapping to the
// first match when none follows.
func (m *Manager) Next(from int) (types.Span, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if len(m.matches) == 0 {
		return types.Span{}, false
	}
	for _, span := range m.matches {
		if span.Start > from {
			return span, true
		}
	}
	return m.matches[0], true
}

// Prev returns the last match starting before from, wrapping to the
// last match when none precedes.
func (m *Manager) Prev(from int) (types.Span, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if len(m.matches) == 0 {
		return types.Span{}, false
	}
	for i := len(m.matches) - 1; i >= 0; i-- {
		if m.matches[i].Start < from {
			return m.matches[i], true
		}
	}
	return m.matches[len(m.matches)-1], true
}

// byteSpansToRuneSpans converts sorted, non-overlapping byte ranges into
// rune ranges with a single pass over the content.
func byteSpansToRuneSpans(content string, locs [][]int) []types.Span {
	if len(locs) == 0 {
		return nil
	}
	spans := make([]types.Span, 0, len(locs))
	byteIdx, runeIdx := 0, 0
	advance := func(target int) int {
		for byteIdx < target {
			_, size := utf8.DecodeRuneInString(content[byteIdx:])
			byteIdx += size
			runeIdx++
		}
		return runeIdx
	}
	for _, loc := range locs {
		start := advance(loc[0])
		end := advance(loc[1])
		spans = append(spans, types.Span{Start: start, End: end})
	}
	return spans
}
