package roundtable

import (
	"context"
	"fmt"

	"github.com/reelsmith/roundtable/internal/llm"
	"github.com/reelsmith/roundtable/internal/persona"
)

// runDebate drives the fixed challenge/response exchange. The pair comes
// from configuration, never from brief content. Both legs stream; the
// second leg cannot start before the first finishes because the response
// prompt embeds the challenge text.
//
// The debate is advisory: any failure emits DebateError, records the
// reason on the exchange, and lets the pipeline continue to synthesis.
func (e *Engine) runDebate(ctx context.Context, s *session, req Request) DebateExchange {
	ctx, span := tracer.Start(ctx, "roundtable.debate")
	defer span.End()

	exchange := DebateExchange{
		ChallengerID: e.debatePair[0],
		ResponderID:  e.debatePair[1],
	}

	challenger, err := e.registry.Get(e.debatePair[0])
	if err == nil {
		var responder persona.Persona
		responder, err = e.registry.Get(e.debatePair[1])
		if err == nil {
			return e.streamDebate(ctx, s, req, challenger, responder)
		}
	}

	// Misconfigured pair: same containment as a failed leg.
	reason := fmt.Sprintf("debate pair misconfigured: %v", err)
	s.log.WarnContext(ctx, "Debate skipped", "error", err)
	s.emit(Event{Type: EventDebateError, Reason: reason})
	exchange.Error = reason
	return exchange
}

func (e *Engine) streamDebate(ctx context.Context, s *session, req Request, challenger, responder persona.Persona) DebateExchange {
	exchange := DebateExchange{
		ChallengerID: challenger.ID(),
		ResponderID:  responder.ID(),
	}

	s.emit(Event{Type: EventDebateStart, From: challenger.ID(), To: responder.ID()})

	// Leg 1: the challenge, built from the brief alone.
	challengeText, err := e.streamDebateLeg(ctx, s, challenger.ID(),
		debateChallengePrompt(challenger, responder, req))
	if err != nil {
		reason := failureReason(err)
		s.log.WarnContext(ctx, "Debate challenge leg failed", "persona_id", challenger.ID(), "error", err)
		s.emit(Event{Type: EventDebateError, Reason: reason})
		exchange.Error = reason
		return exchange
	}
	exchange.ChallengeText = challengeText
	s.emit(Event{Type: EventDebateMessage, From: challenger.ID(), To: responder.ID(), Text: challengeText})

	// Leg 2: the response, which embeds the challenge verbatim.
	responseText, err := e.streamDebateLeg(ctx, s, responder.ID(),
		debateResponsePrompt(challenger, responder, req, challengeText))
	if err != nil {
		reason := failureReason(err)
		s.log.WarnContext(ctx, "Debate response leg failed", "persona_id", responder.ID(), "error", err)
		s.emit(Event{Type: EventDebateError, Reason: reason})
		exchange.Error = reason
		return exchange
	}
	exchange.ResponseText = responseText
	s.emit(Event{Type: EventDebateMessage, From: responder.ID(), To: challenger.ID(), Text: responseText})

	s.emit(Event{Type: EventDebateComplete})
	return exchange
}

func (e *Engine) streamDebateLeg(ctx context.Context, s *session, id persona.ID, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.perCallTimeout)
	defer cancel()

	return e.gateway.StreamComplete(callCtx, llm.Request{Prompt: prompt}, func(delta string) {
		s.emit(Event{Type: EventDebateChunk, PersonaID: id, Text: delta})
	})
}

func debateChallengePrompt(challenger, responder persona.Persona, req Request) string {
	return fmt.Sprintf(`You are %s, the %s. You are opening a structured creative debate with
%s, the %s, about the short-form video brief below.

Issue one pointed creative challenge: the single decision in this production
where your two crafts are most likely to pull in opposite directions. State
your position and why the %s should have to defend theirs. 3-5 sentences,
first person, direct address.

CREATIVE BRIEF:
%s
`, challenger.DisplayName(), challenger.Role(),
		responder.DisplayName(), responder.Role(),
		responder.Role(), req.Brief)
}

func debateResponsePrompt(challenger, responder persona.Persona, req Request, challengeText string) string {
	return fmt.Sprintf(`You are %s, the %s. %s, the %s, has just challenged you in a structured
creative debate about the short-form video brief below.

THE CHALLENGE:
%s

Respond directly. Concede what is right, defend what you must, and land on a
concrete compromise the production can execute. 3-5 sentences, first person,
direct address.

CREATIVE BRIEF:
%s
`, responder.DisplayName(), responder.Role(),
		challenger.DisplayName(), challenger.Role(),
		challengeText, req.Brief)
}
