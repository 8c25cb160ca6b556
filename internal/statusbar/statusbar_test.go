package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	return s
}

// rowText reads the given screen row back as a trimmed string.
func rowText(s tcell.SimulationScreen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDefaultDisplayText(t *testing.T) {
	sb := New(Config{MessageTimeout: time.Second})
	sb.SetDocInfo("doc.html", 1234)
	sb.SetCaretInfo(56, 2, 6)
	sb.SetMarkInfo(3, "note")

	assert.Equal(t, "doc.html -- Off: 56 (Ln 3, Col 7 / 1234 runes)", sb.getDefaultDisplayText())
	assert.Equal(t, "3 marks [note]", sb.getMarksDisplayText())
}

func TestDisplayTextWithFindAndPane(t *testing.T) {
	sb := New(Config{MessageTimeout: time.Second})
	sb.SetDocInfo("doc.html", 10)
	sb.SetFindInfo("needle", 2)
	sb.SetPaneMode("SOURCE")

	text := sb.getDefaultDisplayText()
	assert.Contains(t, text, "/needle (2)")
	assert.Contains(t, text, "-- SOURCE")
}

func TestDrawStatusLine(t *testing.T) {
	s := newTestScreen(t)
	width, height := s.Size()

	sb := New(Config{MessageTimeout: time.Second})
	sb.SetDocInfo("doc.html", 42)
	sb.SetMarkInfo(1, "mark")
	sb.Draw(s, width, height, nil)

	line := rowText(s, height-1)
	assert.True(t, strings.HasPrefix(line, "doc.html -- Off: 0"), "got %q", line)
	assert.True(t, strings.HasSuffix(line, "1 marks [mark]"), "got %q", line)
}

func TestDrawTemporaryMessageWins(t *testing.T) {
	s := newTestScreen(t)
	width, height := s.Size()

	sb := New(Config{MessageTimeout: time.Minute})
	sb.SetDocInfo("doc.html", 42)
	sb.SetTemporaryMessage("saved %d marks", 7)
	sb.Draw(s, width, height, nil)

	assert.Equal(t, "saved 7 marks", rowText(s, height-1))
}

func TestExpiredMessageFallsBack(t *testing.T) {
	s := newTestScreen(t)
	width, height := s.Size()

	sb := New(Config{MessageTimeout: time.Millisecond})
	sb.SetDocInfo("doc.html", 42)
	sb.SetTemporaryMessage("blink")
	time.Sleep(5 * time.Millisecond)
	sb.Draw(s, width, height, nil)

	line := rowText(s, height-1)
	assert.NotContains(t, line, "blink")
	assert.Contains(t, line, "doc.html")
}

func TestResetTemporaryMessage(t *testing.T) {
	s := newTestScreen(t)
	width, height := s.Size()

	sb := New(Config{MessageTimeout: time.Minute})
	sb.SetDocInfo("doc.html", 42)
	sb.SetTemporaryMessage("gone")
	sb.ResetTemporaryMessage()
	sb.Draw(s, width, height, nil)

	assert.NotContains(t, rowText(s, height-1), "gone")
}
