package roundtable

import (
	"github.com/reelsmith/roundtable/internal/persona"
)

// EventType tags one case of the session event union.
type EventType string

const (
	EventStatus            EventType = "status"
	EventTypingStart       EventType = "typing_start"
	EventTypingStop        EventType = "typing_stop"
	EventMessageChunk      EventType = "message_chunk"
	EventMessageComplete   EventType = "message_complete"
	EventAgentError        EventType = "agent_error"
	EventDebateStart       EventType = "debate_start"
	EventDebateChunk       EventType = "debate_chunk"
	EventDebateMessage     EventType = "debate_message"
	EventDebateComplete    EventType = "debate_complete"
	EventDebateError       EventType = "debate_error"
	EventSynthesisStart    EventType = "synthesis_start"
	EventSynthesisChunk    EventType = "synthesis_chunk"
	EventSynthesisComplete EventType = "synthesis_complete"
	EventSynthesisError    EventType = "synthesis_error"
	EventShotsChunk        EventType = "shots_chunk"
	EventShotsComplete     EventType = "shots_complete"
)

// Event is one unit of streamed session progress. Which payload fields are
// set depends on Type; unused fields are omitted from JSON so callers can
// frame events directly over SSE or a chunked response.
type Event struct {
	Type      EventType  `json:"type"`
	Stage     string     `json:"stage,omitempty"`
	Message   string     `json:"message,omitempty"`
	PersonaID persona.ID `json:"persona_id,omitempty"`
	From      persona.ID `json:"from,omitempty"`
	To        persona.ID `json:"to,omitempty"`
	Text      string     `json:"text,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// Sink receives the ordered event stream for one session. A non-nil error
// from Send tells the engine the consumer is gone; the engine treats it as
// a cancellation signal and stops issuing phase steps.
type Sink interface {
	Send(Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event) error

func (f SinkFunc) Send(e Event) error { return f(e) }

// NopSink discards all events; useful for tests and headless callers that
// only want the final SessionResult.
func NopSink() Sink {
	return SinkFunc(func(Event) error { return nil })
}
