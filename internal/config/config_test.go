// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "empty serving table",
			mutate:  func(c *Config) { c.Database.Table = "" },
			wantErr: "database.table",
		},
		{
			name:    "empty id column",
			mutate:  func(c *Config) { c.Database.Source.IDColumn = "" },
			wantErr: "id_column",
		},
		{
			name:    "empty tag column",
			mutate:  func(c *Config) { c.Database.Source.TagColumn = "" },
			wantErr: "tag_column",
		},
		{
			name:    "zero neighbors",
			mutate:  func(c *Config) { c.Pipeline.Neighbors = 0 },
			wantErr: "pipeline.neighbors",
		},
		{
			name:    "negative min dist",
			mutate:  func(c *Config) { c.Pipeline.MinDist = -0.5 },
			wantErr: "pipeline.min_dist",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "server.timeout",
		},
		{
			name:    "zero default page size",
			mutate:  func(c *Config) { c.API.DefaultPageSize = 0 },
			wantErr: "default_page_size",
		},
		{
			name: "max page size below default",
			mutate: func(c *Config) {
				c.API.DefaultPageSize = 50
				c.API.MaxPageSize = 10
			},
			wantErr: "max_page_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		parquet string
		table   string
		wantErr bool
	}{
		{name: "parquet only", parquet: "/data/games.parquet", wantErr: false},
		{name: "table only", table: "raw_games", wantErr: false},
		{name: "both set", parquet: "/data/games.parquet", table: "raw_games", wantErr: true},
		{name: "neither set", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Database.Source.Parquet = tt.parquet
			cfg.Database.Source.SourceTable = tt.table
			err := cfg.ValidateSource()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSource() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultExcludedTags(t *testing.T) {
	cfg := defaultConfig()
	want := []string{"Early_Access", "Free_to_Play", "Steam_Machine", "Controller"}
	if len(cfg.Pipeline.ExcludedTags) != len(want) {
		t.Fatalf("ExcludedTags = %v, want %v", cfg.Pipeline.ExcludedTags, want)
	}
	for i, tag := range want {
		if cfg.Pipeline.ExcludedTags[i] != tag {
			t.Errorf("ExcludedTags[%d] = %q, want %q", i, cfg.Pipeline.ExcludedTags[i], tag)
		}
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"SOURCE_PARQUET", "database.source.parquet"},
		{"EXCLUDED_TAGS", "pipeline.excluded_tags"},
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},     // unrelated environment noise
		{"HOSTNAME", ""}, // unrelated environment noise
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanfEnvOverrides(t *testing.T) {
	t.Setenv("DUCKDB_PATH", "/tmp/test.duckdb")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EXCLUDED_TAGS", "Early_Access, Demo")
	t.Setenv("SOURCE_PARQUET", "/tmp/games.parquet")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error: %v", err)
	}

	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q, want /tmp/test.duckdb", cfg.Database.Path)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Source.Parquet != "/tmp/games.parquet" {
		t.Errorf("Source.Parquet = %q, want /tmp/games.parquet", cfg.Database.Source.Parquet)
	}

	want := []string{"Early_Access", "Demo"}
	if len(cfg.Pipeline.ExcludedTags) != len(want) {
		t.Fatalf("ExcludedTags = %v, want %v", cfg.Pipeline.ExcludedTags, want)
	}
	for i, tag := range want {
		if cfg.Pipeline.ExcludedTags[i] != tag {
			t.Errorf("ExcludedTags[%d] = %q, want %q", i, cfg.Pipeline.ExcludedTags[i], tag)
		}
	}

	// Untouched settings keep their defaults.
	if cfg.API.DefaultPageSize != 20 || cfg.API.MaxPageSize != 100 {
		t.Errorf("API paging = %d/%d, want defaults 20/100",
			cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
	}
}

func TestLoadWithKoanfDefaults(t *testing.T) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error: %v", err)
	}

	if cfg.Database.Table != "games" {
		t.Errorf("Database.Table = %q, want games", cfg.Database.Table)
	}
	if cfg.Database.Source.IDColumn != "game_id" || cfg.Database.Source.TagColumn != "tags" {
		t.Errorf("source columns = %q/%q, want game_id/tags",
			cfg.Database.Source.IDColumn, cfg.Database.Source.TagColumn)
	}
	if cfg.Pipeline.Seed != 42 || cfg.Pipeline.Neighbors != 15 || cfg.Pipeline.MinDist != 0.1 {
		t.Errorf("pipeline defaults = seed %d, neighbors %d, min_dist %v",
			cfg.Pipeline.Seed, cfg.Pipeline.Neighbors, cfg.Pipeline.MinDist)
	}
	if cfg.Server.Port != 8314 {
		t.Errorf("Server.Port = %d, want 8314", cfg.Server.Port)
	}
}
