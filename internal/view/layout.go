// Package view renders the flattened document content into the terminal,
// soft-wrapping at grapheme boundaries and painting highlight regions,
// search matches and the selection.
package view

import (
	"sort"

	"github.com/rivo/uniseg"
)

// Row is one visual line: a half-open rune range of the content. A row
// ended by a newline excludes the newline rune itself; the newline's
// offset equals the row's End.
type Row struct {
	Start, End int

	byteStart, byteEnd int
}

// Layout is a soft-wrap of content at a fixed cell width. Offsets are
// rune offsets into the content, matching the coordinate space of the
// document index.
type Layout struct {
	content string
	width   int
	rows    []Row
	total   int
}

// NewLayout wraps content at width cells. Rows break at newlines and at
// grapheme cluster boundaries when a cluster would overflow the width.
func NewLayout(content string, width int) *Layout {
	if width < 1 {
		width = 1
	}
	l := &Layout{content: content, width: width}

	rowStart, rowByteStart := 0, 0
	visual := 0
	runeIdx := 0

	gr := uniseg.NewGraphemes(content)
	for gr.Next() {
		runes := gr.Runes()
		from, to := gr.Positions()

		if len(runes) == 1 && runes[0] == '\n' {
			l.rows = append(l.rows, Row{Start: rowStart, End: runeIdx, byteStart: rowByteStart, byteEnd: from})
			runeIdx++
			rowStart = runeIdx
			rowByteStart = to
			visual = 0
			continue
		}

		w := clusterWidth(runes, gr.Width())
		if visual+w > width && visual > 0 {
			l.rows = append(l.rows, Row{Start: rowStart, End: runeIdx, byteStart: rowByteStart, byteEnd: from})
			rowStart = runeIdx
			rowByteStart = from
			visual = 0
		}

		visual += w
		runeIdx += len(runes)
	}

	l.rows = append(l.rows, Row{Start: rowStart, End: runeIdx, byteStart: rowByteStart, byteEnd: len(content)})
	l.total = runeIdx
	return l
}

// clusterWidth is the display width of a grapheme cluster. Tabs render
// as a single space, so they count one cell.
func clusterWidth(runes []rune, graphemeWidth int) int {
	if len(runes) == 1 && runes[0] == '\t' {
		return 1
	}
	return graphemeWidth
}

// RowCount returns the number of visual rows; always at least one.
func (l *Layout) RowCount() int { return len(l.rows) }

// Row returns the i'th visual row.
func (l *Layout) Row(i int) Row { return l.rows[i] }

// Total returns the content length in runes.
func (l *Layout) Total() int { return l.total }

// RowText returns the content of one visual row.
func (l *Layout) RowText(i int) string {
	r := l.rows[i]
	return l.content[r.byteStart:r.byteEnd]
}

// RowFor returns the row holding offset. An offset on a soft-wrap
// boundary belongs to the continuation row; an offset on a newline
// belongs to the row the newline ends.
func (l *Layout) RowFor(offset int) int {
	offset = l.clamp(offset)
	i := sort.Search(len(l.rows), func(i int) bool {
		return l.rows[i].Start > offset
	}) - 1
	if i < 0 {
		i = 0
	}
	return i
}

// PositionFor maps a rune offset to its visual row and column.
func (l *Layout) PositionFor(offset int) (row, visualCol int) {
	offset = l.clamp(offset)
	row = l.RowFor(offset)
	r := l.rows[row]

	runeIdx := r.Start
	gr := uniseg.NewGraphemes(l.content[r.byteStart:r.byteEnd])
	for gr.Next() {
		if runeIdx >= offset {
			break
		}
		visualCol += clusterWidth(gr.Runes(), gr.Width())
		runeIdx += len(gr.Runes())
	}
	return row, visualCol
}

// OffsetAt maps a visual row and column back to a rune offset, snapping
// to the start of the grapheme cluster covering the column. Out-of-range
// rows clamp to the layout's ends.
func (l *Layout) OffsetAt(row, visualCol int) int {
	if row < 0 {
		return 0
	}
	if row >= len(l.rows) {
		return l.total
	}
	r := l.rows[row]

	runeIdx := r.Start
	visual := 0
	gr := uniseg.NewGraphemes(l.content[r.byteStart:r.byteEnd])
	for gr.Next() {
		w := clusterWidth(gr.Runes(), gr.Width())
		if visual+w > visualCol {
			return runeIdx
		}
		visual += w
		runeIdx += len(gr.Runes())
	}
	return r.End
}

func (l *Layout) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > l.total {
		return l.total
	}
	return offset
}
