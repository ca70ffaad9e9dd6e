package roundtable

import (
	"context"
	"fmt"
	"strings"

	"github.com/reelsmith/roundtable/internal/llm"
)

// synthesisChunkSize batches synthesis deltas into chunks of at least this
// many characters so the event volume stays bounded on long documents.
const synthesisChunkSize = 50

// synthesisMaxTokens is higher than the per-persona calls: the final
// document carries eleven sections and the shot list feeds off it.
const synthesisMaxTokens = 8192

// DefaultSections is the fixed section contract of the final document, in
// required order.
func DefaultSections() []string {
	return []string{
		"Story & Direction",
		"Format & Look",
		"Lenses & Filtration",
		"Grade/Palette",
		"Lighting & Atmosphere",
		"Location & Framing",
		"Wardrobe/Props/Extras",
		"Sound",
		"Optimized Shot List",
		"Camera Notes",
		"Finishing",
	}
}

// runSynthesis merges every persona's technical analysis and the context
// bundle into the final fixed-section document. Failure here is fatal to
// the session: the product has no output without it. The returned error is
// always a *SynthesisFailure unless the context was cancelled.
func (e *Engine) runSynthesis(ctx context.Context, s *session, req Request, tech []TechnicalResult) (string, error) {
	ctx, span := tracer.Start(ctx, "roundtable.synthesis")
	defer span.End()

	s.emit(Event{Type: EventSynthesisStart})

	prompt := e.synthesisPrompt(req, tech)

	var chunk strings.Builder
	callCtx, cancel := context.WithTimeout(ctx, e.perCallTimeout)
	defer cancel()

	finalPrompt, err := e.gateway.StreamComplete(callCtx, llm.Request{
		Prompt:    prompt,
		MaxTokens: synthesisMaxTokens,
	}, func(delta string) {
		chunk.WriteString(delta)
		if chunk.Len() >= synthesisChunkSize {
			s.emit(Event{Type: EventSynthesisChunk, Text: chunk.String()})
			chunk.Reset()
		}
	})
	if err != nil {
		failure := &SynthesisFailure{Reason: "synthesis call failed", Err: err}
		s.emit(Event{Type: EventSynthesisError, Reason: failure.Error()})
		return "", failure
	}

	if chunk.Len() > 0 {
		s.emit(Event{Type: EventSynthesisChunk, Text: chunk.String()})
	}

	if err := validateSections(finalPrompt, e.sections); err != nil {
		failure := &SynthesisFailure{Reason: "output violates section contract", Err: err}
		s.emit(Event{Type: EventSynthesisError, Reason: failure.Error()})
		return "", failure
	}

	s.emit(Event{Type: EventSynthesisComplete, Text: finalPrompt})
	return finalPrompt, nil
}

// runShotList generates the numbered, timecoded shot list from a successful
// final document. Never called when synthesis failed; its own failure is
// fatal like synthesis.
func (e *Engine) runShotList(ctx context.Context, s *session, finalPrompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "roundtable.shotlist")
	defer span.End()

	callCtx, cancel := context.WithTimeout(ctx, e.perCallTimeout)
	defer cancel()

	shotList, err := e.gateway.StreamComplete(callCtx, llm.Request{
		Prompt: shotListPrompt(finalPrompt),
	}, func(delta string) {
		s.emit(Event{Type: EventShotsChunk, Text: delta})
	})
	if err != nil {
		return "", &SynthesisFailure{Reason: "shot list call failed", Err: err}
	}

	s.emit(Event{Type: EventShotsComplete, Text: shotList})
	return shotList, nil
}

// synthesisPrompt builds the merge prompt from the technical analyses (the
// conversational texts are deliberately excluded) plus the context fields
// synthesis depends on.
func (e *Engine) synthesisPrompt(req Request, tech []TechnicalResult) string {
	var b strings.Builder

	b.WriteString(`You are the showrunner consolidating a creative roundtable into one final
production document for a short-form video.

OUTPUT CONTRACT — NON-NEGOTIABLE:
Produce exactly the following sections, as markdown headers, in this order:
`)
	for i, sec := range e.sections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sec)
	}

	b.WriteString(`
RULES:
1. Every section must be present even if brief; never rename or reorder them
2. Resolve conflicts between analyses in favor of what serves the brief
3. Concrete production values only — lenses, ratios, timings, palettes
`)
	if strings.TrimSpace(req.Context.Screenplay) != "" {
		b.WriteString(`4. Screenplay dialogue below must be rendered verbatim as CHARACTER: "line" — never paraphrase it
`)
	}

	fmt.Fprintf(&b, "\nCREATIVE BRIEF:\n%s\n", req.Brief)
	if req.Platform != "" {
		fmt.Fprintf(&b, "\nTARGET PLATFORM: %s\n", req.Platform)
	}

	b.WriteString("\nDEPARTMENT ANALYSES:\n")
	for _, t := range tech {
		p, err := e.registry.Get(t.PersonaID)
		name := string(t.PersonaID)
		if err == nil {
			name = fmt.Sprintf("%s (%s)", p.DisplayName(), p.Role())
		}
		text := t.Text
		if t.Error != "" || strings.TrimSpace(text) == "" {
			text = "(analysis unavailable)"
		}
		fmt.Fprintf(&b, "\n--- %s ---\n%s\n", name, text)
	}

	if strings.TrimSpace(req.Context.CharacterVoices) != "" {
		fmt.Fprintf(&b, "\nCHARACTER & VOICE PROFILES:\n%s\n", req.Context.CharacterVoices)
	}
	if strings.TrimSpace(req.Context.Screenplay) != "" {
		fmt.Fprintf(&b, "\nSCREENPLAY DIALOGUE (render verbatim):\n%s\n", req.Context.Screenplay)
	}
	if strings.TrimSpace(req.Context.StyleDirectives) != "" {
		fmt.Fprintf(&b, "\nSTYLE DIRECTIVES:\n%s\n", req.Context.StyleDirectives)
	}

	return b.String()
}

func shotListPrompt(finalPrompt string) string {
	return fmt.Sprintf(`Derive a production shot list from the final document below.

FORMAT, PER SHOT:
- Numbered, with a timecode range (e.g. "3. [00:04-00:07]")
- Lens and camera movement using standard vocabulary (e.g. 35mm, push-in,
  whip pan, locked off)
- One-line description of the action in frame
- A one-clause purpose annotation ("— hooks the scroll", "— payoff beat")

Cover the full runtime with no gaps between timecodes. Output only the list.

FINAL DOCUMENT:
%s
`, finalPrompt)
}

// validateSections checks that every required header appears in the output
// in contract order.
func validateSections(text string, sections []string) error {
	offset := 0
	for _, sec := range sections {
		idx := strings.Index(text[offset:], sec)
		if idx < 0 {
			if strings.Contains(text, sec) {
				return fmt.Errorf("section %q out of order", sec)
			}
			return fmt.Errorf("section %q missing", sec)
		}
		offset += idx + len(sec)
	}
	return nil
}
