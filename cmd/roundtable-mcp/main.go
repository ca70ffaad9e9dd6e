package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/reelsmith/roundtable/internal/mcpserver"
	"github.com/reelsmith/roundtable/internal/observability"
)

var version = "1.0.0"

func main() {
	_ = godotenv.Load()

	logger := observability.InitLogger(os.Getenv("DEBUG") != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := observability.InitTracer(ctx, "roundtable-mcp", version)
	if err != nil {
		// Tracing is best-effort; the server still runs without a collector.
		logger.Warn("Tracing disabled", "error", err)
	} else {
		defer tp.Shutdown(context.Background())
	}

	cfg := mcpserver.DefaultConfig()
	srv, err := mcpserver.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}
}
