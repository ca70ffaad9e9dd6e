package roundtable

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/reelsmith/roundtable/internal/llm"
	"github.com/reelsmith/roundtable/internal/persona"
)

// runTechnical fans out one non-streamed analysis call per persona and
// joins on all of them: phase duration is bounded by the slowest call, not
// the sum. The phase is silent: no events reach the sink; its output only
// feeds synthesis.
//
// Each task writes to its own pre-allocated slot, so no lock is needed, and
// task errors are contained on the persona's result rather than failing the
// join. Every call is issued before any is awaited.
func (e *Engine) runTechnical(ctx context.Context, req Request) []TechnicalResult {
	ctx, span := tracer.Start(ctx, "roundtable.technical")
	defer span.End()

	combined := req.Context.Combined()
	personas := e.registry.All()
	results := make([]TechnicalResult, len(personas))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range personas {
		g.Go(func() error {
			prompt := p.TechnicalPrompt(persona.PromptInput{
				Brief:    req.Brief,
				Context:  combined,
				Platform: req.Platform,
			})

			callCtx, cancel := context.WithTimeout(gctx, e.perCallTimeout)
			defer cancel()

			text, err := e.gateway.Complete(callCtx, llm.Request{Prompt: prompt})
			if err != nil {
				agentErr := &AgentError{Phase: "technical", PersonaID: p.ID(), Err: err}
				e.log.WarnContext(gctx, "Persona technical analysis failed",
					"persona_id", p.ID(), "timeout", agentErr.Timeout(), "error", err)
				results[i] = TechnicalResult{
					PersonaID: p.ID(),
					Error:     failureReason(err),
				}
				return nil
			}

			results[i] = TechnicalResult{
				PersonaID: p.ID(),
				Text:      text,
			}
			return nil
		})
	}
	g.Wait()

	return results
}
