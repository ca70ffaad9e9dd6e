package roundtable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSectionsContract(t *testing.T) {
	sections := DefaultSections()
	require.Len(t, sections, 11)
	assert.Equal(t, "Story & Direction", sections[0])
	assert.Equal(t, "Optimized Shot List", sections[8])
	assert.Equal(t, "Finishing", sections[10])
}

func TestValidateSectionsAcceptsContractOrder(t *testing.T) {
	assert.NoError(t, validateSections(sectionedDocument(), DefaultSections()))
}

func TestValidateSectionsReportsMissing(t *testing.T) {
	doc := strings.Replace(sectionedDocument(), "Grade/Palette", "Color Story", 2)
	err := validateSections(doc, DefaultSections())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Grade/Palette" missing`)
}

func TestValidateSectionsReportsOutOfOrder(t *testing.T) {
	var b strings.Builder
	sections := DefaultSections()
	// Swap the first two headers.
	order := append([]string{sections[1], sections[0]}, sections[2:]...)
	for _, sec := range order {
		b.WriteString("## " + sec + "\nbody\n")
	}
	err := validateSections(b.String(), sections)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func TestSynthesisPromptExcludesConversationalText(t *testing.T) {
	engine := New(happyGateway(), Options{})
	req := testRequest()
	req.Context.Screenplay = `VENDOR: "Best skewers in the city."`

	tech := []TechnicalResult{
		{PersonaID: "director", Text: "Analysis A"},
		{PersonaID: "editor", Error: "timeout"},
	}
	prompt := engine.synthesisPrompt(req, tech)

	assert.Contains(t, prompt, "Analysis A")
	assert.Contains(t, prompt, "(analysis unavailable)")
	assert.Contains(t, prompt, "render verbatim")
	assert.Contains(t, prompt, req.Context.Screenplay)
	assert.Contains(t, prompt, "TARGET PLATFORM: tiktok")
}

func TestSynthesisPromptOmitsVerbatimRuleWithoutScreenplay(t *testing.T) {
	engine := New(happyGateway(), Options{})
	prompt := engine.synthesisPrompt(testRequest(), nil)
	assert.NotContains(t, prompt, "verbatim")
}
