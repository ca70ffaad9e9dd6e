package roundtable

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidate(t *testing.T) {
	assert.Error(t, Request{}.Validate())
	assert.Error(t, Request{Brief: "  \n"}.Validate())
	assert.NoError(t, Request{Brief: "a teaser"}.Validate())
}

func TestContextBundleCombinedOrderAndLabels(t *testing.T) {
	bundle := ContextBundle{
		StyleDirectives: "handheld, grainy",
		VisualTemplate:  "vertical triptych",
		Screenplay:      `HOST: "Welcome back."`,
	}
	combined := bundle.Combined()

	vt := strings.Index(combined, "[VISUAL TEMPLATE]")
	sp := strings.Index(combined, "[SCREENPLAY EXCERPT]")
	sd := strings.Index(combined, "[STYLE DIRECTIVES]")
	require.NotEqual(t, -1, vt)
	require.NotEqual(t, -1, sp)
	require.NotEqual(t, -1, sd)
	assert.Less(t, vt, sp)
	assert.Less(t, sp, sd)

	// Absent blocks leave no label behind.
	assert.NotContains(t, combined, "[SETTINGS]")
	assert.NotContains(t, combined, "[CHARACTER & VOICE PROFILES]")
}

func TestContextBundleCombinedEmpty(t *testing.T) {
	assert.Empty(t, ContextBundle{}.Combined())
	assert.Empty(t, ContextBundle{Settings: "   "}.Combined())
}

func TestSaveAndLoadResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	in := &SessionResult{
		SessionID: "01TEST",
		Status:    StatusCompleted,
		Synthesis: SynthesisResult{FinalPrompt: "doc", ShotList: "1. [00:00-00:02] open"},
		Round1: []PersonaRound{
			{PersonaID: "director", DisplayName: "Mara Voss"},
		},
	}
	require.NoError(t, SaveResult(in, path))

	out, err := LoadResult(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadResultMissingFile(t *testing.T) {
	_, err := LoadResult(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
