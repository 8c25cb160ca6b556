// Package doc owns the file-backed document: parsing HTML into the
// content tree, rendering it back out, and the sidecar token file kept
// beside it.
package doc

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bethropolis/marque"
	"github.com/bethropolis/marque/dom"
	"github.com/bethropolis/marque/htmldom"
	"github.com/bethropolis/marque/internal/config"
)

// Document is a parsed HTML document and the path it came from.
type Document struct {
	filePath string
	root     *dom.Node
}

// Load reads and parses the file at filePath. A missing or empty path
// yields a new document with an empty body.
func Load(filePath string) (*Document, error) {
	if filePath == "" {
		return &Document{root: dom.NewContainer(marque.StableRootTag)}, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Document{
				filePath: filePath,
				root:     dom.NewContainer(marque.StableRootTag),
			}, nil
		}
		return nil, fmt.Errorf("opening document %q: %w", filePath, err)
	}
	defer file.Close()

	root, err := htmldom.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing document %q: %w", filePath, err)
	}
	return &Document{filePath: filePath, root: root}, nil
}

// Root returns the document's body container.
func (d *Document) Root() *dom.Node { return d.root }

// FilePath returns the path the document was loaded from, or "" for a new
// document.
func (d *Document) FilePath() string { return d.filePath }

// Render serializes the current tree back to HTML.
func (d *Document) Render() (string, error) {
	return htmldom.RenderString(d.root)
}

// Save renders the tree and writes it to filePath, or to the stored path
// when filePath is empty.
func (d *Document) Save(filePath string) error {
	path := d.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	content, err := d.Render()
	if err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}

	d.filePath = path
	return nil
}

// SidecarPath returns the path of the token file kept beside the document,
// or "" for an unsaved document.
func (d *Document) SidecarPath() string {
	if d.filePath == "" {
		return ""
	}
	return d.filePath + config.SidecarExtension
}

// WriteSidecar writes one token per line beside the document. An empty
// token list removes the sidecar instead of leaving a stale one.
func (d *Document) WriteSidecar(tokens []string) error {
	path := d.SidecarPath()
	if path == "" {
		return errors.New("no file path for sidecar")
	}

	if len(tokens) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing sidecar %q: %w", path, err)
		}
		return nil
	}

	content := strings.Join(tokens, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write sidecar %q: %w", path, err)
	}
	return nil
}

// LoadSidecar reads the tokens stored beside the document, one per line.
// A missing sidecar is not an error.
func (d *Document) LoadSidecar() ([]string, error) {
	path := d.SidecarPath()
	if path == "" {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening sidecar %q: %w", path, err)
	}
	defer file.Close()

	var tokens []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			tokens = append(tokens, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sidecar %q: %w", path, err)
	}
	return tokens, nil
}
