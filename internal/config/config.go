// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

// Package config defines the application configuration and its koanf-based
// layered loader (defaults, optional YAML file, environment variables).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for both the batch embedding job and the
// read API server.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig configures the embedded DuckDB catalog store.
type DatabaseConfig struct {
	// Path is the DuckDB database file, or ":memory:" for an in-memory store.
	Path string `koanf:"path"`

	// MaxMemory is DuckDB's memory limit (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// PreserveInsertionOrder mirrors DuckDB's setting of the same name.
	// Disabling it reduces memory usage for large bulk loads.
	PreserveInsertionOrder bool `koanf:"preserve_insertion_order"`

	// Table is the serving table replaced by each pipeline run and read by
	// the paginated API.
	Table string `koanf:"table"`

	Source SourceConfig `koanf:"source"`
}

// SourceConfig describes where the source catalog comes from and which
// columns the pipeline interprets. Exactly one of Parquet or SourceTable
// must be set for a pipeline run.
type SourceConfig struct {
	// Parquet is the path of a Parquet file holding the source catalog.
	// DuckDB reads it natively via read_parquet().
	Parquet string `koanf:"parquet"`

	// SourceTable names an existing table holding the source catalog.
	SourceTable string `koanf:"table"`

	// IDColumn is the unique identifier column of the source catalog.
	IDColumn string `koanf:"id_column"`

	// TagColumn is the comma-separated tag string column.
	TagColumn string `koanf:"tag_column"`
}

// PipelineConfig configures one batch embedding run. Exclusion set, seed and
// reducer knobs are explicit here rather than embedded constants so runs are
// reproducible and testable in isolation.
type PipelineConfig struct {
	// ExcludedTags are dropped from every record before vectorization and
	// never enter the vocabulary. Matching is case-insensitive against the
	// cleaned token form.
	ExcludedTags []string `koanf:"excluded_tags"`

	// Seed feeds the dimensionality reducer for reproducible layouts.
	Seed int64 `koanf:"seed"`

	// Neighbors is the reducer's neighborhood size.
	Neighbors int `koanf:"neighbors"`

	// MinDist is the reducer's minimum output distance between points.
	MinDist float64 `koanf:"min_dist"`

	// OutputParquet, when set, additionally exports the merged catalog to
	// this Parquet file after the serving table is replaced.
	OutputParquet string `koanf:"output_parquet"`
}

// ServerConfig configures the HTTP read API server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig configures pagination behavior of the read API.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would make a run or the
// server misbehave in non-obvious ways. It is called by LoadWithKoanf after
// all layers are merged.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.Table == "" {
		return fmt.Errorf("database.table must not be empty")
	}
	if c.Database.Source.IDColumn == "" {
		return fmt.Errorf("database.source.id_column must not be empty")
	}
	if c.Database.Source.TagColumn == "" {
		return fmt.Errorf("database.source.tag_column must not be empty")
	}
	if c.Pipeline.Neighbors < 1 {
		return fmt.Errorf("pipeline.neighbors must be >= 1, got %d", c.Pipeline.Neighbors)
	}
	if c.Pipeline.MinDist < 0 {
		return fmt.Errorf("pipeline.min_dist must be >= 0, got %f", c.Pipeline.MinDist)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be >= 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	return nil
}

// ValidateSource checks that a pipeline run has exactly one catalog source
// configured. The API server does not need a source, so this is separate
// from Validate.
func (c *Config) ValidateSource() error {
	hasParquet := c.Database.Source.Parquet != ""
	hasTable := c.Database.Source.SourceTable != ""
	switch {
	case hasParquet && hasTable:
		return fmt.Errorf("database.source: parquet and table are mutually exclusive")
	case !hasParquet && !hasTable:
		return fmt.Errorf("database.source: either parquet or table must be set")
	}
	return nil
}
