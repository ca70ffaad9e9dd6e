package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelsmith/roundtable/internal/llm"
	"github.com/reelsmith/roundtable/internal/roundtable"
)

// scriptedGateway answers every call instantly with phase-appropriate canned
// text, or blocks until cancellation when block is set.
type scriptedGateway struct {
	block bool
}

func (g *scriptedGateway) respond(ctx context.Context, prompt string) (string, error) {
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	switch {
	case strings.Contains(prompt, "OUTPUT CONTRACT"):
		var b strings.Builder
		for _, sec := range roundtable.DefaultSections() {
			fmt.Fprintf(&b, "## %s\nbody\n", sec)
		}
		return b.String(), nil
	case strings.Contains(prompt, "Derive a production shot list"):
		return "1. [00:00-00:02] open — hooks the scroll", nil
	default:
		return "Keep the hook tight. Cut on the beat.", nil
	}
}

func (g *scriptedGateway) Complete(ctx context.Context, req llm.Request) (string, error) {
	return g.respond(ctx, req.Prompt)
}

func (g *scriptedGateway) StreamComplete(ctx context.Context, req llm.Request, onDelta func(string)) (string, error) {
	text, err := g.respond(ctx, req.Prompt)
	if err == nil {
		onDelta(text)
	}
	return text, err
}

func newTestManager(t *testing.T, gw llm.Gateway, maxTasks int) (*TaskManager, *SessionStore) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	engine := roundtable.New(gw, roundtable.Options{Logger: logger})
	store := NewSessionStore()
	return NewTaskManager(engine, store, maxTasks, logger, context.Background()), store
}

func sessionState(st *SessionStore, id string) SessionState {
	snap, err := st.Get(id, 0)
	if err != nil {
		return ""
	}
	return snap.State
}

func TestTaskManagerRunsSessionToCompletion(t *testing.T) {
	tm, store := newTestManager(t, &scriptedGateway{}, 4)

	id, err := tm.StartSession(context.Background(), testReq())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Eventually(t, func() bool {
		return sessionState(store, id) == StateCompleted
	}, 5*time.Second, 10*time.Millisecond)

	snap, err := store.Get(id, 0)
	require.NoError(t, err)
	require.NotNil(t, snap.Result)
	assert.Equal(t, roundtable.StatusCompleted, snap.Result.Status)
	assert.NotEmpty(t, snap.Events)
	assert.Equal(t, roundtable.EventStatus, snap.Events[0].Type)
}

func TestTaskManagerRejectsInvalidRequest(t *testing.T) {
	tm, _ := newTestManager(t, &scriptedGateway{}, 4)

	_, err := tm.StartSession(context.Background(), roundtable.Request{Brief: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brief is required")
}

func TestTaskManagerCancelSession(t *testing.T) {
	tm, store := newTestManager(t, &scriptedGateway{block: true}, 4)

	id, err := tm.StartSession(context.Background(), testReq())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return sessionState(store, id) == StateRunning
	}, time.Second, 5*time.Millisecond)

	tm.CancelSession(id)

	require.Eventually(t, func() bool {
		return sessionState(store, id) == StateCancelled
	}, 5*time.Second, 10*time.Millisecond)
}

func TestTaskManagerEnforcesMaxConcurrent(t *testing.T) {
	tm, store := newTestManager(t, &scriptedGateway{block: true}, 1)

	id, err := tm.StartSession(context.Background(), testReq())
	require.NoError(t, err)

	_, err = tm.StartSession(context.Background(), testReq())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max concurrent sessions")

	// Cancelling the running session frees the slot.
	tm.CancelSession(id)
	var id2 string
	require.Eventually(t, func() bool {
		id2, err = tm.StartSession(context.Background(), testReq())
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	tm.CancelSession(id2)
	require.Eventually(t, func() bool {
		return sessionState(store, id2) == StateCancelled
	}, 5*time.Second, 10*time.Millisecond)
}

func TestTaskManagerCancelUnknownSessionIsNoop(t *testing.T) {
	tm, _ := newTestManager(t, &scriptedGateway{}, 4)
	tm.CancelSession("missing") // must not panic
}
