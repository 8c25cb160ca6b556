// Package types holds small value types shared across the application
// packages.
package types

// Span is a half-open range of rune offsets in the flattened document
// content.
type Span struct {
	Start, End int
}

// Contains reports whether the offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Width returns the span length in runes.
func (s Span) Width() int { return s.End - s.Start }

// StyledRange is a styled run of rune columns on one line of rendered
// source text.
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string
}
