package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/reelsmith/roundtable/internal/observability"
	"github.com/reelsmith/roundtable/internal/roundtable"
)

// TaskManager runs roundtable sessions asynchronously on behalf of MCP
// clients, bounded by a max-concurrent guard.
type TaskManager struct {
	engine  *roundtable.Engine
	store   *SessionStore
	log     *slog.Logger
	baseCtx context.Context // cancelled on SIGTERM for graceful shutdown

	mu       sync.Mutex
	cancels  map[string]context.CancelFunc
	maxTasks int
	running  int
}

// NewTaskManager creates a task manager. baseCtx should be cancelled on
// SIGTERM so session goroutines stop issuing gateway calls on shutdown.
func NewTaskManager(engine *roundtable.Engine, store *SessionStore, maxTasks int, logger *slog.Logger, baseCtx context.Context) *TaskManager {
	if maxTasks <= 0 {
		maxTasks = 4
	}
	return &TaskManager{
		engine:   engine,
		store:    store,
		log:      logger,
		baseCtx:  baseCtx,
		cancels:  make(map[string]context.CancelFunc),
		maxTasks: maxTasks,
	}
}

// StartSession registers a session and starts the engine in a goroutine,
// returning the session ID immediately.
func (tm *TaskManager) StartSession(ctx context.Context, req roundtable.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	id := ulid.Make().String()

	tm.mu.Lock()
	if tm.running >= tm.maxTasks {
		tm.mu.Unlock()
		return "", fmt.Errorf("max concurrent sessions reached (%d)", tm.maxTasks)
	}
	tm.running++

	// Derive the goroutine context from baseCtx (cancelled on SIGTERM)
	// rather than the tool-call context (cancelled when the response is
	// sent), carrying the request's trace span for observability linking.
	taskCtx := observability.DetachTraceContextFrom(ctx, tm.baseCtx)
	taskCtx, cancel := context.WithCancel(taskCtx)
	tm.cancels[id] = cancel
	tm.mu.Unlock()

	tm.store.Create(id, req)
	go tm.runSession(taskCtx, id, req)

	return id, nil
}

// CancelSession cancels a running session.
func (tm *TaskManager) CancelSession(id string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if cancel, ok := tm.cancels[id]; ok {
		cancel()
	}
}

func (tm *TaskManager) runSession(ctx context.Context, id string, req roundtable.Request) {
	ctx, span := tracer.Start(ctx, "session.run",
		trace.WithAttributes(attribute.String("session_id", id)),
	)
	defer span.End()

	defer func() {
		tm.mu.Lock()
		delete(tm.cancels, id)
		tm.running--
		tm.mu.Unlock()
	}()

	log := tm.log.With("session_id", id)
	log.InfoContext(ctx, "Session starting", "platform", req.Platform)

	sink := roundtable.SinkFunc(func(e roundtable.Event) error {
		tm.store.AppendEvent(id, e)
		return nil
	})

	result, err := tm.engine.StartRoundtable(ctx, req, sink)
	if err != nil {
		cancelled := errors.Is(err, context.Canceled) || ctx.Err() != nil
		span.RecordError(err)
		span.SetStatus(codes.Error, "session aborted")
		log.WarnContext(ctx, "Session aborted", "cancelled", cancelled, "error", err)
		tm.store.Fail(id, err.Error(), cancelled)
		return
	}

	tm.store.Complete(id, result)
	if result.Status == roundtable.StatusCompleted {
		span.SetStatus(codes.Ok, "completed")
		log.InfoContext(ctx, "Session completed")
	} else {
		span.SetStatus(codes.Error, "session failed")
		log.WarnContext(ctx, "Session failed", "reason", result.FailureReason)
	}
}
