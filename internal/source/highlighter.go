// Package source colors serialized HTML for the source pane using
// tree-sitter.
package source

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	htmlts "github.com/smacker/go-tree-sitter/html"

	"github.com/bethropolis/marque/internal/logger"
	"github.com/bethropolis/marque/internal/types"
)

//go:embed queries/html/highlights.scm
var htmlHighlightsQuery []byte

// Result holds computed highlights for lookup during drawing. Maps line
// number to the styled ranges on that line, in rune columns.
type Result map[int][]types.StyledRange

// Highlighter parses HTML source and runs the highlight query against it.
// The query is compiled once and reused across calls.
type Highlighter struct {
	parser *sitter.Parser
	query  *sitter.Query
}

// NewHighlighter creates a highlighter with the HTML grammar loaded.
func NewHighlighter() (*Highlighter, error) {
	lang := htmlts.GetLanguage()
	query, err := sitter.NewQuery(htmlHighlightsQuery, lang)
	if err != nil {
		return nil, fmt.Errorf("parsing highlight query: %w", err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Highlighter{parser: parser, query: query}, nil
}

// Close releases the parser and compiled query.
func (h *Highlighter) Close() {
	if h.query != nil {
		h.query.Close()
	}
	if h.parser != nil {
		h.parser.Close()
	}
}

// Highlight parses src and returns styled ranges per line. Captures that
// span lines are split into one range per line. Capture names are kept
// whole; the theme's fallback chain resolves dotted names.
func (h *Highlighter) Highlight(src []byte) (Result, error) {
	tree, err := h.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	defer tree.Close()

	lines := bytes.Split(src, []byte("\n"))

	qc := sitter.NewQueryCursor()
	qc.Exec(h.query, tree.RootNode())

	result := make(Result)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			styleName := h.query.CaptureNameForId(capture.Index)
			startPoint := capture.Node.StartPoint()
			endPoint := capture.Node.EndPoint()

			for row := int(startPoint.Row); row <= int(endPoint.Row); row++ {
				if row < 0 || row >= len(lines) {
					continue
				}
				line := lines[row]
				startByte := 0
				if row == int(startPoint.Row) {
					startByte = int(startPoint.Column)
				}
				endByte := len(line)
				if row == int(endPoint.Row) {
					endByte = int(endPoint.Column)
				}
				startCol := byteOffsetToRuneIndex(line, startByte)
				endCol := byteOffsetToRuneIndex(line, endByte)
				if endCol <= startCol {
					continue
				}
				result[row] = append(result[row], types.StyledRange{
					StartCol:  startCol,
					EndCol:    endCol,
					StyleName: styleName,
				})
			}
		}
	}

	logger.DebugTagf("source", "highlighted %d lines", len(result))
	return result, nil
}

func byteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCount(line[:byteOffset])
}
