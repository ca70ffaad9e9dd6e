package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelsmith/roundtable/internal/persona"
	"github.com/reelsmith/roundtable/internal/roundtable"
)

func renderToFile(t *testing.T, events []roundtable.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	// A regular file is not a TTY, so this exercises plain mode.
	r := NewTranscriptRenderer(f, persona.DefaultRegistry())
	for _, e := range events {
		require.NoError(t, r.Send(e))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPlainModeTranscript(t *testing.T) {
	out := renderToFile(t, []roundtable.Event{
		{Type: roundtable.EventStatus, Message: "The roundtable convenes"},
		{Type: roundtable.EventTypingStart, PersonaID: persona.Director},
		{Type: roundtable.EventMessageChunk, PersonaID: persona.Director, Text: "Open on the stall. "},
		{Type: roundtable.EventMessageComplete, PersonaID: persona.Director, Text: "Open on the stall."},
		{Type: roundtable.EventTypingStop, PersonaID: persona.Director},
	})

	assert.Contains(t, out, "The roundtable convenes")
	assert.Contains(t, out, "director: Open on the stall.")
	assert.Contains(t, out, "director: (turn complete)")
	// Animation events leave no plain-mode lines.
	assert.NotContains(t, out, "typing")
	// Every line carries an elapsed timestamp.
	assert.Contains(t, out, "[0:00]")
}

func TestPlainModeDebateAndErrors(t *testing.T) {
	out := renderToFile(t, []roundtable.Event{
		{Type: roundtable.EventDebateChunk, PersonaID: persona.Director, Text: "Your lens"},
		{Type: roundtable.EventDebateMessage, From: persona.Director, To: persona.Cinematographer, Text: "Your lens fights my blocking."},
		{Type: roundtable.EventAgentError, PersonaID: persona.Editor, Reason: "timeout: completion deadline exceeded"},
		{Type: roundtable.EventSynthesisError, Reason: "synthesis failed: model refused"},
	})

	assert.Contains(t, out, "debate director -> cinematographer: Your lens fights my blocking.")
	assert.Contains(t, out, "editor: ERROR timeout")
	assert.Contains(t, out, "synthesis_error: synthesis failed")
	// Chunked debate deltas are animation off-TTY.
	assert.NotContains(t, out, "Your lens\n")
}

func TestWrapIndentBreaksAtSpaces(t *testing.T) {
	wrapped := wrapIndent("alpha beta gamma delta", 26)
	assert.Equal(t, "alpha beta gamma delta", wrapped)

	wrapped = wrapIndent("alpha beta gamma delta epsilon zeta", 26)
	assert.Contains(t, wrapped, "\n")
	for _, line := range splitLines(wrapped) {
		assert.LessOrEqual(t, len(line), 26)
	}
}

func TestWrapIndentNarrowTerminalPassthrough(t *testing.T) {
	text := "unbroken stream of words"
	assert.Equal(t, text, wrapIndent(text, 10))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00", formatElapsed(0))
	assert.Equal(t, "0:59", formatElapsed(59e9))
	assert.Equal(t, "2:05", formatElapsed(125e9))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
