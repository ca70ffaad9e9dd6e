package persona

import (
	"fmt"
	"strings"
)

// buildConversationalPrompt assembles the streamed in-meeting prompt shared
// by all personas. voiceNotes carries the persona-specific speaking
// direction; extra lines (e.g. the platform callout) are appended verbatim.
func buildConversationalPrompt(p profile, voiceNotes string, in PromptInput, extra ...string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are %s, the %s in a creative roundtable planning a short-form video.

ROLE: %s
EXPERTISE: %s
PERSONALITY: %s

`, p.displayName, p.role, p.role, p.expertise, p.personality)

	b.WriteString("SPEAKING DIRECTION:\n")
	b.WriteString(voiceNotes)
	b.WriteString("\n\n")

	if len(in.PriorSpeakers) > 0 {
		fmt.Fprintf(&b, "ALREADY SPOKEN: %s. React to at least one point a colleague raised — agree, sharpen, or push back — before adding your own take.\n\n",
			strings.Join(in.PriorSpeakers, ", "))
	} else {
		b.WriteString("You speak first. Set the creative direction for the room.\n\n")
	}

	b.WriteString(`RULES:
1. Speak in first person, as yourself in the meeting — no headings, no lists
2. 3-6 sentences of natural speech, specific to this brief
3. Ground every opinion in your craft — name techniques, not vibes
4. Do not summarize the brief back; advance the plan

`)

	for _, line := range extra {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "CREATIVE BRIEF:\n%s\n", in.Brief)
	if in.Context != "" {
		fmt.Fprintf(&b, "\nPRODUCTION CONTEXT:\n%s\n", in.Context)
	}

	return b.String()
}

// buildTechnicalPrompt assembles the hidden structured-analysis prompt.
// Each persona supplies the numbered focus areas its analysis must cover.
func buildTechnicalPrompt(p profile, focus []string, in PromptInput, extra ...string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are %s, the %s. Produce a technical production analysis for the
short-form video brief below. This analysis is internal — it feeds the final
shooting document, it is never shown to the client — so be exact and terse.

COVER, AS LABELED SECTIONS:
`, p.displayName, p.role)

	for i, f := range focus {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f)
	}

	b.WriteString(`
RULES:
1. Concrete values over adjectives: focal lengths, ratios, timings, formats
2. Flag anything in the brief that is technically infeasible
3. No conversational filler, no hedging

`)

	for _, line := range extra {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "CREATIVE BRIEF:\n%s\n", in.Brief)
	if in.Context != "" {
		fmt.Fprintf(&b, "\nPRODUCTION CONTEXT:\n%s\n", in.Context)
	}

	return b.String()
}

func platformCallout(platform string) string {
	if platform == "" {
		platform = "the target platform"
	}
	return fmt.Sprintf("TARGET PLATFORM: %s. Every recommendation must be native to this platform — its aspect ratio, pacing norms, caption conventions, and first-two-seconds retention behavior.", platform)
}
