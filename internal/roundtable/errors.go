package roundtable

import (
	"errors"
	"fmt"

	"github.com/reelsmith/roundtable/internal/llm"
	"github.com/reelsmith/roundtable/internal/persona"
)

// ErrTransport reports that the event sink rejected delivery (the consumer
// disconnected). The engine converts it into session cancellation.
var ErrTransport = errors.New("event sink rejected delivery")

// AgentError is a contained per-persona failure from the conversational or
// technical phase. It is recorded on the persona's result and never aborts
// a phase.
type AgentError struct {
	Phase     string
	PersonaID persona.ID
	Err       error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("[%s] persona %s: %v", e.Phase, e.PersonaID, e.Err)
}

func (e *AgentError) Unwrap() error { return e.Err }

// Timeout reports whether the underlying failure was a deadline hit rather
// than a provider error.
func (e *AgentError) Timeout() bool {
	return errors.Is(e.Err, llm.ErrTimeout)
}

// SynthesisFailure is fatal: without the synthesized document the session
// has no product. It covers both call failures and outputs that violate
// the section contract.
type SynthesisFailure struct {
	Reason string
	Err    error
}

func (e *SynthesisFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("synthesis failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("synthesis failed: %s", e.Reason)
}

func (e *SynthesisFailure) Unwrap() error { return e.Err }

// failureReason renders a contained error for event payloads and result
// error fields.
func failureReason(err error) string {
	if errors.Is(err, llm.ErrTimeout) {
		return "timeout: " + err.Error()
	}
	return err.Error()
}
