package view

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/marque/internal/theme"
	"github.com/bethropolis/marque/internal/tui"
	"github.com/bethropolis/marque/internal/types"
)

// Region is a highlighted range of the flattened content with the label
// that styles it.
type Region struct {
	Start, End int
	Label      string
}

// View tracks what the document pane shows: the flattened content, its
// layout, highlight regions, search matches, selection and caret.
type View struct {
	width, height int
	scrollRow     int
	scrollOff     int

	content string
	layout  *Layout

	regions    []Region
	matches    []types.Span
	lineStyles map[int][]types.StyledRange
	lineStarts []int

	selStart, selEnd int
	hasSel           bool
	caret            int
}

// New creates an empty view with the given scroll margin.
func New(scrollOff int) *View {
	v := &View{scrollOff: scrollOff}
	v.layout = NewLayout("", 1)
	return v
}

// SetSize resizes the text area and reflows the layout.
func (v *View) SetSize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.width = width
	v.height = height
	v.reflow()
}

// SetContent replaces the displayed content and reflows the layout.
func (v *View) SetContent(content string) {
	v.content = content
	v.reflow()
}

// Content returns the displayed content.
func (v *View) Content() string { return v.content }

// Height returns the text area height in rows.
func (v *View) Height() int { return v.height }

func (v *View) reflow() {
	width := v.width
	if width < 1 {
		width = 1
	}
	v.layout = NewLayout(v.content, width)
	v.lineStarts = computeLineStarts(v.content)
	v.caret = v.layout.clamp(v.caret)
	v.clampScroll()
}

// computeLineStarts records the rune offset at which each newline-delimited
// line of content begins.
func computeLineStarts(content string) []int {
	starts := []int{0}
	idx := 0
	for _, r := range content {
		idx++
		if r == '\n' {
			starts = append(starts, idx)
		}
	}
	return starts
}

// Layout exposes the current layout for movement calculations.
func (v *View) Layout() *Layout { return v.layout }

// SetRegions replaces the highlight regions.
func (v *View) SetRegions(regions []Region) { v.regions = regions }

// SetMatches replaces the search match spans.
func (v *View) SetMatches(matches []types.Span) { v.matches = matches }

// SetLineStyles replaces the per-line syntax styles, keyed by
// newline-delimited line number with rune-column ranges. Nil clears them.
func (v *View) SetLineStyles(styles map[int][]types.StyledRange) { v.lineStyles = styles }

// SetSelection sets the selected range. Endpoints may arrive reversed.
func (v *View) SetSelection(start, end int) {
	if end < start {
		start, end = end, start
	}
	v.selStart, v.selEnd = start, end
	v.hasSel = true
}

// ClearSelection drops the selection.
func (v *View) ClearSelection() { v.hasSel = false }

// SetCaret moves the caret and scrolls it into view.
func (v *View) SetCaret(offset int) {
	v.caret = v.layout.clamp(offset)
	v.EnsureVisible(v.caret)
}

// Caret returns the caret's rune offset.
func (v *View) Caret() int { return v.caret }

// ScrollRow returns the first visible row.
func (v *View) ScrollRow() int { return v.scrollRow }

// EnsureVisible scrolls so the row holding offset stays inside the
// scroll-off margin.
func (v *View) EnsureVisible(offset int) {
	if v.height <= 0 {
		return
	}
	row := v.layout.RowFor(offset)

	margin := v.scrollOff
	if margin*2 >= v.height {
		margin = 0
	}

	if row < v.scrollRow+margin {
		v.scrollRow = row - margin
	}
	if row > v.scrollRow+v.height-1-margin {
		v.scrollRow = row - v.height + 1 + margin
	}
	v.clampScroll()
}

func (v *View) clampScroll() {
	maxScroll := v.layout.RowCount() - v.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.scrollRow > maxScroll {
		v.scrollRow = maxScroll
	}
	if v.scrollRow < 0 {
		v.scrollRow = 0
	}
}

// Draw paints the visible rows. Style precedence per cell: syntax, then
// highlight marker, then search match, then selection.
func (v *View) Draw(t *tui.TUI, activeTheme *theme.Theme) {
	if activeTheme == nil {
		activeTheme = theme.GetCurrentTheme()
	}
	defaultStyle := activeTheme.GetStyle("Default")
	selectionStyle := activeTheme.GetStyle("Selection")
	searchStyle := activeTheme.GetStyle("SearchHighlight")

	screen := t.GetScreen()

	for screenY := 0; screenY < v.height; screenY++ {
		for fillX := 0; fillX < v.width; fillX++ {
			screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}

		rowIdx := v.scrollRow + screenY
		if rowIdx < 0 || rowIdx >= v.layout.RowCount() {
			continue
		}
		row := v.layout.Row(rowIdx)

		screenX := 0
		runeIdx := row.Start
		gr := uniseg.NewGraphemes(v.layout.RowText(rowIdx))
		for gr.Next() {
			clusterRunes := gr.Runes()
			cw := clusterWidth(clusterRunes, gr.Width())

			style := v.styleAt(runeIdx, activeTheme, defaultStyle, searchStyle, selectionStyle)

			if screenX < v.width {
				mainRune := clusterRunes[0]
				combining := clusterRunes[1:]
				if mainRune == '\t' {
					mainRune = ' '
				}
				screen.SetContent(screenX, screenY, mainRune, combining, style)
				for i := 1; i < cw; i++ {
					if screenX+i < v.width {
						screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				}
			}

			screenX += cw
			runeIdx += len(clusterRunes)
			if screenX >= v.width {
				break
			}
		}
	}
}

// styleAt resolves the style for the cluster starting at the given rune
// offset.
func (v *View) styleAt(offset int, activeTheme *theme.Theme, defaultStyle, searchStyle, selectionStyle tcell.Style) tcell.Style {
	style := defaultStyle
	if len(v.lineStyles) > 0 {
		line := sort.Search(len(v.lineStarts), func(i int) bool { return v.lineStarts[i] > offset }) - 1
		if line >= 0 {
			col := offset - v.lineStarts[line]
			for _, sr := range v.lineStyles[line] {
				if col >= sr.StartCol && col < sr.EndCol {
					style = activeTheme.GetStyle(sr.StyleName)
					break
				}
			}
		}
	}
	for _, r := range v.regions {
		if offset >= r.Start && offset < r.End {
			style = activeTheme.MarkerStyle(r.Label)
			break
		}
	}
	for _, m := range v.matches {
		if m.Contains(offset) {
			style = searchStyle
			break
		}
	}
	if v.hasSel && offset >= v.selStart && offset < v.selEnd {
		style = selectionStyle
	}
	return style
}

// DrawCursor positions the terminal cursor on the caret, hiding it when
// scrolled out of the text area.
func (v *View) DrawCursor(t *tui.TUI) {
	row, col := v.layout.PositionFor(v.caret)
	screenY := row - v.scrollRow

	if screenY < 0 || screenY >= v.height || col >= v.width || v.height <= 0 {
		t.GetScreen().HideCursor()
		return
	}
	t.GetScreen().ShowCursor(col, screenY)
}
