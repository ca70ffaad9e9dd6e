package roundtable

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/reelsmith/roundtable/internal/persona"
)

// ConversationalResult is one persona's streamed in-meeting contribution.
// Text is empty when Error is set; exactly one result exists per persona
// per session.
type ConversationalResult struct {
	PersonaID persona.ID `json:"persona_id"`
	Text      string     `json:"text"`
	Error     string     `json:"error,omitempty"`
}

// TechnicalResult is one persona's hidden structured analysis. Its
// lifecycle is independent from the conversational result: either may fail
// without affecting the other.
type TechnicalResult struct {
	PersonaID persona.ID `json:"persona_id"`
	Text      string     `json:"text"`
	Error     string     `json:"error,omitempty"`
}

// PersonaRound merges one persona's Round-1 outputs, joined by persona ID.
type PersonaRound struct {
	PersonaID      persona.ID           `json:"persona_id"`
	DisplayName    string               `json:"display_name"`
	Conversational ConversationalResult `json:"conversational"`
	Technical      TechnicalResult      `json:"technical"`
}

// DebateExchange is the scripted challenge/response pair. Zero-valued when
// the debate failed (the debate is advisory and its absence is recorded,
// not fatal).
type DebateExchange struct {
	ChallengerID  persona.ID `json:"challenger_id"`
	ResponderID   persona.ID `json:"responder_id"`
	ChallengeText string     `json:"challenge_text"`
	ResponseText  string     `json:"response_text"`
	Error         string     `json:"error,omitempty"`
}

// SynthesisResult is the session's product: the fixed-section final
// document plus the dependent shot list.
type SynthesisResult struct {
	FinalPrompt string `json:"final_prompt"`
	ShotList    string `json:"shot_list"`
}

// Status is the terminal state of a session.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// SessionResult aggregates everything one session produced. It is built
// once, returned to the caller, and never mutated afterwards; the engine
// holds no reference to it across sessions.
type SessionResult struct {
	SessionID     string          `json:"session_id"`
	Round1        []PersonaRound  `json:"round1"`
	Debate        DebateExchange  `json:"debate"`
	Synthesis     SynthesisResult `json:"synthesis"`
	Status        Status          `json:"status"`
	FailureReason string          `json:"failure_reason,omitempty"`
}

// SaveResult writes a session result as indented JSON.
func SaveResult(r *SessionResult, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write session result to %s: %w", path, err)
	}
	return nil
}

// LoadResult reads a session result saved by SaveResult.
func LoadResult(path string) (*SessionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session result from %s: %w", path, err)
	}
	var r SessionResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse session result from %s: %w", path, err)
	}
	return &r, nil
}
