// Package htmldom converts between HTML markup and dom content trees. Parsing
// maps elements to containers, text to text leaves and HTML void elements to
// void leaves; rendering is the inverse. Script and style subtrees ingest as
// blackbox containers so their code never shows up as addressable content.
package htmldom

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/bethropolis/marque"
	"github.com/bethropolis/marque/dom"
)

// ErrNoBody is returned when a parsed document has no body element.
var ErrNoBody = errors.New("document has no body element")

// voidTags are the HTML elements that never hold content.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// opaqueTags hold code rather than content; they ingest as blackbox
// containers.
var opaqueTags = map[string]bool{
	"script": true, "style": true,
}

// Parse reads an HTML document and returns its body as a container tagged
// "body", which doubles as the stable root for highlight tokens.
// Whitespace-only text nodes are dropped; all other text is kept verbatim.
func Parse(r io.Reader) (*dom.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	body := findElement(doc, "body")
	if body == nil {
		return nil, ErrNoBody
	}
	return convert(body), nil
}

// Fragment parses an HTML fragment string; the parser synthesizes the
// enclosing document.
func Fragment(s string) (*dom.Node, error) {
	return Parse(strings.NewReader(s))
}

// findElement returns the first element with the given tag, depth-first.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// convert maps one html node into a dom node. Comments, doctypes and
// whitespace-only text map to nil.
func convert(n *html.Node) *dom.Node {
	switch n.Type {
	case html.ElementNode:
		if voidTags[n.Data] {
			v := dom.NewVoid(n.Data)
			copyAttrs(n, v)
			return v
		}
		box := dom.NewContainer(n.Data)
		copyAttrs(n, box)
		if opaqueTags[n.Data] {
			box.SetAttr(marque.TypeAttr, marque.TypeBlackbox)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				box.Append(child)
			}
		}
		return box
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return dom.NewText(n.Data)
	}
	return nil
}

func copyAttrs(src *html.Node, dst *dom.Node) {
	for _, attr := range src.Attr {
		dst.SetAttr(attr.Key, attr.Val)
	}
}

// Render writes the subtree as HTML markup, attributes in sorted order.
func Render(w io.Writer, n *dom.Node) error {
	return html.Render(w, toHTML(n))
}

// RenderString renders the subtree into a string.
func RenderString(n *dom.Node) (string, error) {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// toHTML maps a dom node back onto the html node shape Render understands.
func toHTML(n *dom.Node) *html.Node {
	switch n.Kind() {
	case dom.KindText:
		return &html.Node{Type: html.TextNode, Data: n.Text()}
	case dom.KindVoid:
		return &html.Node{Type: html.ElementNode, Data: n.Tag(), Attr: htmlAttrs(n)}
	}
	h := &html.Node{Type: html.ElementNode, Data: n.Tag(), Attr: htmlAttrs(n)}
	for _, c := range n.Children() {
		h.AppendChild(toHTML(c))
	}
	return h
}

func htmlAttrs(n *dom.Node) []html.Attribute {
	attrs := n.Attrs()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, html.Attribute{Key: k, Val: attrs[k]})
	}
	return out
}
