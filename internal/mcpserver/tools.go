package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/reelsmith/roundtable/internal/roundtable"
)

var tracer = otel.Tracer("roundtable-mcp")

// ToolDefs returns the MCP tool definitions.
func ToolDefs() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "start_roundtable",
			Description: "Start an agent roundtable session for a short-video creative brief. Returns a session ID immediately; poll get_session for streamed events and the final document.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"brief": map[string]any{
						"type":        "string",
						"description": "The creative brief for the short-form video",
					},
					"platform": map[string]any{
						"type":        "string",
						"description": "Target platform (e.g. tiktok, reels, shorts)",
					},
					"visual_template": map[string]any{
						"type":        "string",
						"description": "Optional visual template description",
					},
					"character_voices": map[string]any{
						"type":        "string",
						"description": "Optional character and voice profiles",
					},
					"settings": map[string]any{
						"type":        "string",
						"description": "Optional list of settings/locations",
					},
					"screenplay": map[string]any{
						"type":        "string",
						"description": "Optional screenplay excerpt; dialogue is rendered verbatim in the final document",
					},
					"style_directives": map[string]any{
						"type":        "string",
						"description": "Optional style directives",
					},
				},
				Required: []string{"brief"},
			},
		},
		{
			Name:        "get_session",
			Description: "Get a session's state, its event log, and — once finished — the final document and shot list. Pass events_after to page the event log.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"session_id": map[string]any{
						"type":        "string",
						"description": "The session ID returned from start_roundtable",
					},
					"events_after": map[string]any{
						"type":        "integer",
						"description": "Return only events after this index (default 0 = all)",
					},
				},
				Required: []string{"session_id"},
			},
		},
		{
			Name:        "list_sessions",
			Description: "List all sessions on this server, newest first, without event logs.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
			},
		},
		{
			Name:        "cancel_session",
			Description: "Cancel a running session. In-flight model calls are aborted and the partial result is discarded.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"session_id": map[string]any{
						"type":        "string",
						"description": "The session ID to cancel",
					},
				},
				Required: []string{"session_id"},
			},
		},
	}
}

// Handlers implements the MCP tool handlers.
type Handlers struct {
	tasks *TaskManager
	store *SessionStore
	log   *slog.Logger
}

// NewHandlers creates tool handlers.
func NewHandlers(tasks *TaskManager, store *SessionStore, logger *slog.Logger) *Handlers {
	return &Handlers{tasks: tasks, store: store, log: logger}
}

// HandleStartRoundtable starts an async session.
func (h *Handlers) HandleStartRoundtable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.start_roundtable")
	defer span.End()

	rtReq := roundtable.Request{
		Brief:    mcp.ParseString(req, "brief", ""),
		Platform: mcp.ParseString(req, "platform", ""),
		Context: roundtable.ContextBundle{
			VisualTemplate:  mcp.ParseString(req, "visual_template", ""),
			CharacterVoices: mcp.ParseString(req, "character_voices", ""),
			Settings:        mcp.ParseString(req, "settings", ""),
			Screenplay:      mcp.ParseString(req, "screenplay", ""),
			StyleDirectives: mcp.ParseString(req, "style_directives", ""),
		},
	}

	span.SetAttributes(attribute.String("platform", rtReq.Platform))

	if rtReq.Brief == "" {
		span.SetStatus(codes.Error, "missing brief")
		return mcp.NewToolResultError("brief is required"), nil
	}

	id, err := h.tasks.StartSession(ctx, rtReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "start session failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to start session: %v", err)), nil
	}

	span.SetAttributes(attribute.String("session_id", id))
	h.log.InfoContext(ctx, "Roundtable session started", "session_id", id, "platform", rtReq.Platform)

	return jsonResult(map[string]any{
		"session_id": id,
		"state":      StateRunning,
		"message":    "Roundtable started. Use get_session with this session_id to follow progress.",
	})
}

// HandleGetSession returns a session snapshot.
func (h *Handlers) HandleGetSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.get_session")
	defer span.End()

	id := mcp.ParseString(req, "session_id", "")
	if id == "" {
		span.SetStatus(codes.Error, "missing session_id")
		return mcp.NewToolResultError("session_id is required"), nil
	}
	span.SetAttributes(attribute.String("session_id", id))

	after := parseIntParam(req, "events_after", 0)
	snap, err := h.store.Get(id, after)
	if err != nil {
		span.SetStatus(codes.Error, "unknown session")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(snap)
}

// HandleListSessions returns session summaries, newest first.
func (h *Handlers) HandleListSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, span := tracer.Start(ctx, "tool.list_sessions")
	defer span.End()

	return jsonResult(map[string]any{
		"sessions": h.store.List(),
	})
}

// HandleCancelSession cancels a running session.
func (h *Handlers) HandleCancelSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.cancel_session")
	defer span.End()

	id := mcp.ParseString(req, "session_id", "")
	if id == "" {
		span.SetStatus(codes.Error, "missing session_id")
		return mcp.NewToolResultError("session_id is required"), nil
	}
	span.SetAttributes(attribute.String("session_id", id))

	h.tasks.CancelSession(id)
	h.log.InfoContext(ctx, "Session cancellation requested", "session_id", id)

	return jsonResult(map[string]any{
		"session_id": id,
		"message":    "Cancellation requested.",
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func parseIntParam(req mcp.CallToolRequest, key string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	raw, ok := args[key]
	if !ok {
		return defaultVal
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return defaultVal
	}
}
