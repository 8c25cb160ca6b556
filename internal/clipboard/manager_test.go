package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests run against the internal buffer only; the system clipboard is
// unavailable in CI.

func TestCopyAndRead(t *testing.T) {
	m := NewManager(false)
	require.NoError(t, m.Copy("hello world"))

	text, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.True(t, m.HasContent())
}

func TestCopyTokensJoinsLines(t *testing.T) {
	m := NewManager(false)
	require.NoError(t, m.CopyTokens([]string{"body:3-9", "body:12-15"}))

	text, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "body:3-9\nbody:12-15", text)
}

func TestReadTokensSplitsAndTrims(t *testing.T) {
	m := NewManager(false)
	require.NoError(t, m.Copy("  body:3-9 \n\nbody:12-15\n"))

	tokens, err := m.ReadTokens()
	require.NoError(t, err)
	assert.Equal(t, []string{"body:3-9", "body:12-15"}, tokens)
}

func TestReadTokensEmptyClipboard(t *testing.T) {
	m := NewManager(false)

	tokens, err := m.ReadTokens()
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.False(t, m.HasContent())
}

func TestCopyOverwritesPrevious(t *testing.T) {
	m := NewManager(false)
	require.NoError(t, m.Copy("first"))
	require.NoError(t, m.Copy("second"))

	text, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}
