package roundtable

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/reelsmith/roundtable/internal/llm"
	"github.com/reelsmith/roundtable/internal/persona"
)

var tracer = otel.Tracer("roundtable-engine")

// defaultCallTimeout bounds every individual gateway call. There is no
// session-wide timeout; a slow session is bounded per step, not in total.
const defaultCallTimeout = 60 * time.Second

// Options configures an Engine. Zero values select the base configuration.
type Options struct {
	Registry       *persona.Registry // defaults to persona.DefaultRegistry()
	DebatePair     [2]persona.ID     // defaults to {Director, Cinematographer}
	PerCallTimeout time.Duration     // defaults to 60s
	Sections       []string          // defaults to DefaultSections()
	Logger         *slog.Logger      // defaults to slog.Default()
}

// Engine drives roundtable sessions. It is stateless across sessions; the
// gateway is its only shared resource and must tolerate concurrent calls.
type Engine struct {
	gateway        llm.Gateway
	registry       *persona.Registry
	debatePair     [2]persona.ID
	perCallTimeout time.Duration
	sections       []string
	log            *slog.Logger
}

// New creates an engine around the given gateway.
func New(gateway llm.Gateway, opts Options) *Engine {
	if opts.Registry == nil {
		opts.Registry = persona.DefaultRegistry()
	}
	if opts.DebatePair == ([2]persona.ID{}) {
		opts.DebatePair = [2]persona.ID{persona.Director, persona.Cinematographer}
	}
	if opts.PerCallTimeout <= 0 {
		opts.PerCallTimeout = defaultCallTimeout
	}
	if len(opts.Sections) == 0 {
		opts.Sections = DefaultSections()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		gateway:        gateway,
		registry:       opts.Registry,
		debatePair:     opts.DebatePair,
		perCallTimeout: opts.PerCallTimeout,
		sections:       opts.Sections,
		log:            opts.Logger,
	}
}

// session is the per-run wiring between phase runners and the caller's
// event sink. A sink delivery failure cancels the session context so
// in-flight gateway calls release their connections.
type session struct {
	id     string
	sink   Sink
	cancel context.CancelFunc
	log    *slog.Logger
}

// emit sends one event. On delivery failure the session is cancelled and
// ErrTransport returned; streaming callbacks may ignore the error because
// the cancellation already propagates through the context.
func (s *session) emit(e Event) error {
	if err := s.sink.Send(e); err != nil {
		s.log.Warn("event sink rejected delivery, cancelling session", "event_type", e.Type, "error", err)
		s.cancel()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

// StartRoundtable runs one full session: the sequential conversational
// phase, the concurrent technical phase, the scripted debate, synthesis,
// and the dependent shot list. Contained failures (a persona, a debate
// leg) are recorded on the result; a synthesis or shot-list failure yields
// a SessionResult with StatusFailed. Cancellation discards the partial
// result and returns the context error.
func (e *Engine) StartRoundtable(ctx context.Context, req Request, sink Sink) (*SessionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink()
	}

	id := ulid.Make().String()
	ctx, span := tracer.Start(ctx, "roundtable.session",
		trace.WithAttributes(
			attribute.String("session_id", id),
			attribute.String("platform", req.Platform),
		),
	)
	defer span.End()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := &session{
		id:     id,
		sink:   sink,
		cancel: cancel,
		log:    e.log.With("session_id", id),
	}
	s.log.InfoContext(ctx, "Roundtable session starting",
		"personas", e.registry.Len(), "platform", req.Platform)

	if err := s.emit(Event{
		Type:    EventStatus,
		Stage:   "round1",
		Message: "The roundtable convenes",
	}); err != nil {
		return nil, err
	}

	conv := e.runConversational(ctx, s, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tech := e.runTechnical(ctx, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &SessionResult{
		SessionID: id,
		Round1:    e.mergeRounds(conv, tech),
	}

	result.Debate = e.runDebate(ctx, s, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finalPrompt, err := e.runSynthesis(ctx, s, req, tech)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "synthesis failed")
		s.log.ErrorContext(ctx, "Synthesis failed, session unrecoverable", "error", err)
		result.Status = StatusFailed
		result.FailureReason = err.Error()
		return result, nil
	}
	result.Synthesis.FinalPrompt = finalPrompt

	shotList, err := e.runShotList(ctx, s, finalPrompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "shot list failed")
		s.log.ErrorContext(ctx, "Shot list generation failed", "error", err)
		result.Status = StatusFailed
		result.FailureReason = err.Error()
		return result, nil
	}
	result.Synthesis.ShotList = shotList

	result.Status = StatusCompleted
	span.SetStatus(codes.Ok, "completed")
	s.log.InfoContext(ctx, "Roundtable session completed")
	return result, nil
}

// mergeRounds joins conversational and technical results by persona ID,
// in registry order.
func (e *Engine) mergeRounds(conv []ConversationalResult, tech []TechnicalResult) []PersonaRound {
	techByID := make(map[persona.ID]TechnicalResult, len(tech))
	for _, t := range tech {
		techByID[t.PersonaID] = t
	}

	rounds := make([]PersonaRound, 0, len(conv))
	for _, c := range conv {
		p, err := e.registry.Get(c.PersonaID)
		name := string(c.PersonaID)
		if err == nil {
			name = p.DisplayName()
		}
		rounds = append(rounds, PersonaRound{
			PersonaID:      c.PersonaID,
			DisplayName:    name,
			Conversational: c,
			Technical:      techByID[c.PersonaID],
		})
	}
	return rounds
}
