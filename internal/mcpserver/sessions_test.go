package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelsmith/roundtable/internal/roundtable"
)

func testReq() roundtable.Request {
	return roundtable.Request{Brief: "a teaser", Platform: "tiktok"}
}

func TestSessionStoreLifecycle(t *testing.T) {
	st := NewSessionStore()
	st.Create("s1", testReq())

	snap, err := st.Get("s1", 0)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, "a teaser", snap.Brief)
	assert.Empty(t, snap.Events)

	st.AppendEvent("s1", roundtable.Event{Type: roundtable.EventStatus, Message: "convenes"})
	st.AppendEvent("s1", roundtable.Event{Type: roundtable.EventTypingStart, PersonaID: "director"})

	st.Complete("s1", &roundtable.SessionResult{
		SessionID: "s1",
		Status:    roundtable.StatusCompleted,
	})

	snap, err = st.Get("s1", 0)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, snap.State)
	require.NotNil(t, snap.Result)
	assert.Len(t, snap.Events, 2)
}

func TestSessionStoreEventPaging(t *testing.T) {
	st := NewSessionStore()
	st.Create("s1", testReq())
	for i := 0; i < 5; i++ {
		st.AppendEvent("s1", roundtable.Event{Type: roundtable.EventMessageChunk})
	}

	snap, err := st.Get("s1", 3)
	require.NoError(t, err)
	assert.Len(t, snap.Events, 2)

	// An index past the log yields an empty page, not an error.
	snap, err = st.Get("s1", 99)
	require.NoError(t, err)
	assert.Empty(t, snap.Events)
}

func TestSessionStoreUnknownSession(t *testing.T) {
	st := NewSessionStore()
	_, err := st.Get("missing", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session")
}

func TestSessionStoreFailAndCancelStates(t *testing.T) {
	st := NewSessionStore()
	st.Create("s1", testReq())
	st.Create("s2", testReq())

	st.Fail("s1", "event sink rejected delivery", false)
	st.Fail("s2", "context canceled", true)

	s1, err := st.Get("s1", 0)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, s1.State)
	assert.Equal(t, "event sink rejected delivery", s1.FailureReason)

	s2, err := st.Get("s2", 0)
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, s2.State)
}

func TestSessionStoreFailedEngineResult(t *testing.T) {
	st := NewSessionStore()
	st.Create("s1", testReq())
	st.Complete("s1", &roundtable.SessionResult{
		Status:        roundtable.StatusFailed,
		FailureReason: "synthesis failed: model refused",
	})

	snap, err := st.Get("s1", 0)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, snap.State)
	assert.Contains(t, snap.FailureReason, "synthesis failed")
}

func TestSessionStoreListNewestFirstWithoutLogs(t *testing.T) {
	st := NewSessionStore()
	st.Create("old", testReq())
	st.AppendEvent("old", roundtable.Event{Type: roundtable.EventStatus})
	st.Create("new", testReq())

	list := st.List()
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
	assert.Empty(t, list[1].Events)
	assert.Nil(t, list[1].Result)
}

func TestSessionStoreSnapshotIsACopy(t *testing.T) {
	st := NewSessionStore()
	st.Create("s1", testReq())
	st.AppendEvent("s1", roundtable.Event{Type: roundtable.EventStatus})

	snap, err := st.Get("s1", 0)
	require.NoError(t, err)
	snap.Events[0].Type = "mutated"

	again, err := st.Get("s1", 0)
	require.NoError(t, err)
	assert.Equal(t, roundtable.EventStatus, again.Events[0].Type)
}
