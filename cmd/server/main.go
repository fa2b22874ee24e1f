// Package main implements the entry point for the bookshelf API server,
// a book catalog service with user authentication, rate limiting, and
// soft-delete/restore semantics.
package main

import (
	"context"
	"log"

	"github.com/harperlib/bookshelf-api/internal/config"
	"github.com/harperlib/bookshelf-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
