// Package main is the entry point for the course catalog API server.
//
// The main package is kept minimal. Its job is to:
// 1. Read configuration (environment variables, via internal/config)
// 2. Create the logger
// 3. Build and start the server
//
// All actual logic lives in imported packages (internal/server, internal/handler, etc.).
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sakif/course-api/internal/config"
	"github.com/sakif/course-api/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// Every setting has a default, so this only fails on a malformed value
	// such as PORT=abc or BCRYPT_COST=2.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	// Log levels (from least to most severe): Debug → Info → Warn → Error
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// === 3. CREATE AND START THE SERVER ===
	// New fails if the database can't be opened or migrated.
	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("unable to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
