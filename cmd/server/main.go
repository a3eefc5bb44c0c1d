// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

// Package main is the entry point for the GameAtlas read API server.
//
// The server exposes the embedded game catalog produced by the atlas batch
// job as a paginated read-only HTTP API backed by DuckDB. It never writes
// to the catalog; the atlas job is the only writer.
//
// # Endpoints
//
//   - GET /api/v1/games         paginated catalog rows (bare JSON array)
//   - GET /api/v1/games/count   total row count
//   - GET /api/v1/health/live   liveness probe
//   - GET /api/v1/health/ready  readiness probe (database ping)
//   - GET /metrics              Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config.yaml, built-in defaults.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits up to 10 seconds for in-flight requests,
// then closes the database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gameatlas/gameatlas/internal/api"
	"github.com/gameatlas/gameatlas/internal/config"
	"github.com/gameatlas/gameatlas/internal/database"
	"github.com/gameatlas/gameatlas/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("serving_table", cfg.Database.Table).
		Msg("Starting GameAtlas server")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	handler := api.NewHandler(db, &cfg.API)
	router := api.NewRouter(handler, nil)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Serve until a shutdown signal arrives.
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
