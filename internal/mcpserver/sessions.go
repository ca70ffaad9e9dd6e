package mcpserver

import (
	"fmt"
	"sync"
	"time"

	"github.com/reelsmith/roundtable/internal/roundtable"
)

// SessionState is the lifecycle state of one tracked session.
type SessionState string

const (
	StateRunning   SessionState = "running"
	StateCompleted SessionState = "completed"
	StateFailed    SessionState = "failed"
	StateCancelled SessionState = "cancelled"
)

// Session is a point-in-time snapshot of one roundtable run: its event log
// so far and, once finished, the final result. Snapshots are copies; the
// store's internal records are never handed out.
type Session struct {
	ID            string                    `json:"session_id"`
	State         SessionState              `json:"state"`
	Brief         string                    `json:"brief"`
	Platform      string                    `json:"platform"`
	CreatedAt     time.Time                 `json:"created_at"`
	Events        []roundtable.Event        `json:"events,omitempty"`
	Result        *roundtable.SessionResult `json:"result,omitempty"`
	FailureReason string                    `json:"failure_reason,omitempty"`
}

// SessionStore tracks sessions in memory for the lifetime of the server.
// The engine itself owns no persistence; the store exists so MCP clients
// can poll an async run.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    []string // insertion order, newest last
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create registers a new running session.
func (st *SessionStore) Create(id string, req roundtable.Request) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[id] = &Session{
		ID:        id,
		State:     StateRunning,
		Brief:     req.Brief,
		Platform:  req.Platform,
		CreatedAt: time.Now().UTC(),
	}
	st.order = append(st.order, id)
}

// AppendEvent records one event on a session's ordered log.
func (st *SessionStore) AppendEvent(id string, e roundtable.Event) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		s.Events = append(s.Events, e)
	}
}

// Complete stores the final result and maps the engine status to a state.
func (st *SessionStore) Complete(id string, result *roundtable.SessionResult) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return
	}
	s.Result = result
	if result.Status == roundtable.StatusCompleted {
		s.State = StateCompleted
	} else {
		s.State = StateFailed
		s.FailureReason = result.FailureReason
	}
}

// Fail marks a session that produced no result (cancellation, transport).
func (st *SessionStore) Fail(id, reason string, cancelled bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return
	}
	if cancelled {
		s.State = StateCancelled
	} else {
		s.State = StateFailed
	}
	s.FailureReason = reason
}

// Get returns a snapshot of one session, with events after the given index
// (pass 0 for the full log).
func (st *SessionStore) Get(id string, eventsAfter int) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %q", id)
	}
	snap := *s
	if eventsAfter < 0 || eventsAfter > len(s.Events) {
		eventsAfter = len(s.Events)
	}
	snap.Events = append([]roundtable.Event(nil), s.Events[eventsAfter:]...)
	return &snap, nil
}

// List returns summaries (no event logs, no results), newest first.
func (st *SessionStore) List() []Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]Session, 0, len(st.order))
	for i := len(st.order) - 1; i >= 0; i-- {
		s := st.sessions[st.order[i]]
		out = append(out, Session{
			ID:            s.ID,
			State:         s.State,
			Brief:         s.Brief,
			Platform:      s.Platform,
			CreatedAt:     s.CreatedAt,
			FailureReason: s.FailureReason,
		})
	}
	return out
}
