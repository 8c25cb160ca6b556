// Package clipboard stores yanked text and highlight tokens, optionally
// mirroring them to the system clipboard.
package clipboard

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/marque/internal/logger"
)

// Manager handles clipboard operations. The document itself is never
// modified by a paste; reads exist so highlight tokens can be imported
// from other applications.
type Manager struct {
	mutex  sync.Mutex
	buffer string
	system bool
}

// NewManager creates a new clipboard manager. When useSystem is true and
// the platform supports it, copies are mirrored to the system clipboard
// and reads prefer it.
func NewManager(useSystem bool) *Manager {
	if useSystem && clipboard.Unsupported {
		logger.Warnf("clipboard: system clipboard unsupported on this platform, using internal buffer only")
		useSystem = false
	}
	return &Manager{system: useSystem}
}

// Copy stores text in the clipboard. The internal buffer always receives
// the text; a system clipboard failure is logged but does not fail the copy.
func (m *Manager) Copy(text string) error {
	m.mutex.Lock()
	m.buffer = text
	m.mutex.Unlock()

	if m.system {
		if err := clipboard.WriteAll(text); err != nil {
			logger.Warnf("clipboard: system write failed: %v", err)
		}
	}
	logger.DebugTagf("clipboard", "copied %d bytes", len(text))
	return nil
}

// CopyTokens stores serialized highlight tokens, one per line.
func (m *Manager) CopyTokens(tokens []string) error {
	return m.Copy(strings.Join(tokens, "\n"))
}

// Read returns the current clipboard content. When the system clipboard is
// enabled its content wins, so tokens copied from another application can
// be imported; the internal buffer is the fallback.
func (m *Manager) Read() (string, error) {
	if m.system {
		text, err := clipboard.ReadAll()
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			logger.DebugTagf("clipboard", "system read failed, falling back: %v", err)
		}
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.buffer, nil
}

// ReadTokens splits the clipboard content into candidate tokens, one per
// line, dropping blanks.
func (m *Manager) ReadTokens() ([]string, error) {
	text, err := m.Read()
	if err != nil {
		return nil, err
	}
	var tokens []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tokens = append(tokens, line)
		}
	}
	return tokens, nil
}

// HasContent reports whether the internal buffer holds anything.
func (m *Manager) HasContent() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.buffer != ""
}
