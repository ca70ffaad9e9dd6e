package roundtable

import (
	"context"

	"github.com/reelsmith/roundtable/internal/llm"
	"github.com/reelsmith/roundtable/internal/persona"
)

// runConversational visits personas strictly in registry order and streams
// each one's in-meeting response, chunked at sentence boundaries. The
// ordering matters: each prompt receives the names of personas that have
// already completed, folded through the loop as an append-only accumulator.
//
// A persona failure is contained: the error is recorded, the terminal
// TypingStop still fires, and the phase moves on. The returned slice always
// holds one entry per persona, in registry order.
func (e *Engine) runConversational(ctx context.Context, s *session, req Request) []ConversationalResult {
	ctx, span := tracer.Start(ctx, "roundtable.conversation")
	defer span.End()

	combined := req.Context.Combined()
	personas := e.registry.All()

	results := make([]ConversationalResult, 0, len(personas))
	spoken := make([]string, 0, len(personas))

	for _, p := range personas {
		if err := ctx.Err(); err != nil {
			// Cancelled mid-phase: stop issuing gateway calls but keep the
			// result list complete, one entry per persona.
			results = append(results, ConversationalResult{
				PersonaID: p.ID(),
				Error:     failureReason(err),
			})
			continue
		}

		s.emit(Event{Type: EventTypingStart, PersonaID: p.ID()})

		prompt := p.ConversationalPrompt(persona.PromptInput{
			Brief:         req.Brief,
			Context:       combined,
			Platform:      req.Platform,
			PriorSpeakers: spoken,
		})

		buf := newSentenceBuffer(func(sentence string) {
			s.emit(Event{Type: EventMessageChunk, PersonaID: p.ID(), Text: sentence})
		})

		callCtx, cancelCall := context.WithTimeout(ctx, e.perCallTimeout)
		fullText, err := e.gateway.StreamComplete(callCtx, llm.Request{Prompt: prompt}, buf.Write)
		cancelCall()

		if err != nil {
			agentErr := &AgentError{Phase: "conversation", PersonaID: p.ID(), Err: err}
			s.log.WarnContext(ctx, "Persona conversational turn failed",
				"persona_id", p.ID(), "timeout", agentErr.Timeout(), "error", err)
			s.emit(Event{Type: EventAgentError, PersonaID: p.ID(), Reason: failureReason(err)})
			s.emit(Event{Type: EventTypingStop, PersonaID: p.ID()})
			results = append(results, ConversationalResult{
				PersonaID: p.ID(),
				Error:     failureReason(err),
			})
			continue
		}

		buf.Flush()
		s.emit(Event{Type: EventMessageComplete, PersonaID: p.ID(), Text: fullText})
		s.emit(Event{Type: EventTypingStop, PersonaID: p.ID()})

		spoken = append(spoken, p.DisplayName())
		results = append(results, ConversationalResult{
			PersonaID: p.ID(),
			Text:      fullText,
		})
	}

	return results
}
