package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mark3labs/mcp-go/server"

	"github.com/reelsmith/roundtable/internal/llm"
	"github.com/reelsmith/roundtable/internal/roundtable"
)

// Config holds server configuration.
type Config struct {
	Port        int
	Model       string // model alias passed to the Claude gateway
	MaxSessions int    // concurrent roundtable sessions
}

// DefaultConfig returns a Config populated from environment variables.
func DefaultConfig() Config {
	return Config{
		Port:        envIntOr("PORT", 8000),
		Model:       envOr("ROUNDTABLE_MODEL", "haiku"),
		MaxSessions: envIntOr("MAX_SESSIONS", 4),
	}
}

// Server exposes the roundtable engine as MCP tools.
type Server struct {
	cfg      Config
	mcp      *server.MCPServer
	handlers *Handlers
	log      *slog.Logger
}

// New creates and configures the MCP server. baseCtx is the process
// lifetime context; sessions started by tools outlive their tool calls but
// not the server.
func New(baseCtx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
	}

	gateway := llm.NewClaudeGateway(cfg.Model)
	engine := roundtable.New(gateway, roundtable.Options{Logger: logger})
	store := NewSessionStore()
	tasks := NewTaskManager(engine, store, cfg.MaxSessions, logger, baseCtx)
	handlers := NewHandlers(tasks, store, logger)

	mcpServer := server.NewMCPServer(
		"roundtable",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools := ToolDefs()
	mcpServer.AddTool(tools[0], handlers.HandleStartRoundtable)
	mcpServer.AddTool(tools[1], handlers.HandleGetSession)
	mcpServer.AddTool(tools[2], handlers.HandleListSessions)
	mcpServer.AddTool(tools[3], handlers.HandleCancelSession)

	return &Server{
		cfg:      cfg,
		mcp:      mcpServer,
		handlers: handlers,
		log:      logger,
	}, nil
}

// Start runs the HTTP MCP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info("Starting MCP server", "addr", addr)

	httpServer := server.NewStreamableHTTPServer(s.mcp,
		server.WithStateLess(true),
	)
	return httpServer.Start(addr)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
