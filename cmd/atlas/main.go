// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

// Package main is the entry point for the atlas batch job.
//
// The job loads a source game catalog from a Parquet file or an existing
// DuckDB table, cleans and vectorizes the tag column, reduces the vectors to
// a 2D layout, and replaces the serving table the read API paginates over.
// Records whose tag set is empty after cleaning keep their row but carry
// null coordinates.
//
// A run is all-or-nothing: any failure aborts before the serving table is
// touched and the process exits non-zero. On success the job optionally
// exports the merged catalog to Parquet.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (DUCKDB_PATH, SOURCE_PARQUET, EXCLUDED_TAGS, ...)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Exactly one of database.source.parquet or database.source.table must be
// set.
//
// # Example Usage
//
//	export SOURCE_PARQUET=/data/games.parquet
//	export DUCKDB_PATH=/data/gameatlas.duckdb
//	./atlas
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gameatlas/gameatlas/internal/config"
	"github.com/gameatlas/gameatlas/internal/database"
	"github.com/gameatlas/gameatlas/internal/embed"
	"github.com/gameatlas/gameatlas/internal/logging"
	"github.com/gameatlas/gameatlas/internal/pipeline"
)

func main() {
	os.Exit(run())
}

// run is separated from main so deferred cleanup executes before the
// process exits with a status code.
func run() int {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := cfg.ValidateSource(); err != nil {
		logging.Error().Err(err).Msg("Invalid source configuration")
		return 1
	}

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("source_parquet", cfg.Database.Source.Parquet).
		Str("source_table", cfg.Database.Source.SourceTable).
		Str("serving_table", cfg.Database.Table).
		Msg("Starting atlas batch job")

	// Cancel the run on SIGINT/SIGTERM so a half-finished batch never
	// replaces the serving table.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize database")
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	start := time.Now()

	records, err := db.LoadCatalog(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load source catalog")
		return 1
	}
	logging.Info().Int("records", len(records)).Msg("Source catalog loaded")

	p := pipeline.New(pipeline.Config{
		ExcludedTags: cfg.Pipeline.ExcludedTags,
		Reduce: embed.Config{
			Components: 2,
			Neighbors:  cfg.Pipeline.Neighbors,
			MinDist:    cfg.Pipeline.MinDist,
			Seed:       cfg.Pipeline.Seed,
		},
	}, embed.NewPCA())

	result, err := p.Run(ctx, records)
	if err != nil {
		logging.Error().Err(err).Msg("Pipeline run failed")
		return 1
	}

	if err := db.ReplaceCatalog(ctx, result.Records); err != nil {
		logging.Error().Err(err).Msg("Failed to replace serving table")
		return 1
	}

	if cfg.Pipeline.OutputParquet != "" {
		if err := db.ExportParquet(ctx, cfg.Pipeline.OutputParquet); err != nil {
			logging.Error().Err(err).
				Str("path", cfg.Pipeline.OutputParquet).
				Msg("Failed to export catalog to Parquet")
			return 1
		}
		logging.Info().
			Str("path", cfg.Pipeline.OutputParquet).
			Msg("Exported merged catalog to Parquet")
	}

	logging.Info().
		Int("total", result.Total).
		Int("tagged", result.Tagged).
		Int("vocabulary", result.VocabularySize).
		Dur("duration", time.Since(start)).
		Msg("Batch job completed")
	return 0
}
