// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gameatlas/gameatlas/internal/metrics"
	"github.com/gameatlas/gameatlas/internal/models"
)

// sourceRelation renders the FROM clause for the configured source catalog.
func (db *DB) sourceRelation() (string, error) {
	src := db.cfg.Source
	switch {
	case src.Parquet != "" && src.SourceTable != "":
		return "", fmt.Errorf("source: parquet and table are mutually exclusive")
	case src.Parquet != "":
		return "read_parquet(" + quoteLiteral(src.Parquet) + ")", nil
	case src.SourceTable != "":
		return quoteIdent(src.SourceTable), nil
	default:
		return "", fmt.Errorf("source: neither parquet nor table configured")
	}
}

// LoadCatalog reads the full source catalog. The identifier and tag columns
// are located by their configured names (exact match first, then
// case-insensitive); every other column passes through in Fields under its
// source name.
//
// A missing source, a missing required column or a NULL identifier is a
// fatal input error.
func (db *DB) LoadCatalog(ctx context.Context) ([]models.GameRecord, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	src, err := db.sourceRelation()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, "SELECT * FROM "+src)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("load_source", db.table).Inc()
		return nil, fmt.Errorf("failed to read source catalog %s: %w", src, err)
	}
	defer closeWithLog(rows, "source catalog rows")

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read source catalog columns: %w", err)
	}

	idIdx := findColumn(cols, db.cfg.Source.IDColumn)
	if idIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, db.cfg.Source.IDColumn)
	}
	tagIdx := findColumn(cols, db.cfg.Source.TagColumn)
	if tagIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, db.cfg.Source.TagColumn)
	}

	var records []models.GameRecord
	vals := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan source catalog row: %w", err)
		}

		if vals[idIdx] == nil {
			return nil, fmt.Errorf("%w (row %d)", ErrNullID, len(records)+1)
		}

		rec := models.GameRecord{
			ID:     formatID(vals[idIdx]),
			Tags:   asString(vals[tagIdx]),
			Fields: make(map[string]interface{}, len(cols)-2),
		}
		for i, col := range cols {
			if i == idIdx || i == tagIdx {
				continue
			}
			rec.Fields[col] = vals[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate source catalog: %w", err)
	}

	metrics.ObserveDBQuery("load_source", db.table, start)
	return records, nil
}

// findColumn locates a column by name, preferring an exact match and
// falling back to a case-insensitive one.
func findColumn(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	for i, c := range cols {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// GetGames returns one page of the serving table in stable identifier
// order. An offset at or beyond the table size yields an empty slice, which
// signals the end of pagination to callers.
func (db *DB) GetGames(ctx context.Context, limit, offset int) ([]models.GameRecord, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s LIMIT ? OFFSET ?",
		quoteIdent(db.table), quoteIdent(db.idCol))
	rows, err := db.conn.QueryContext(ctx, query, limit, offset)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues("get_games", db.table).Inc()
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer closeWithLog(rows, "games rows")

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read games columns: %w", err)
	}

	records := make([]models.GameRecord, 0, limit)
	vals := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}

		rec := models.GameRecord{Fields: make(map[string]interface{})}
		for i, col := range cols {
			switch col {
			case db.idCol:
				rec.ID = formatID(vals[i])
			case db.tagCol:
				rec.Tags = asString(vals[i])
			case "x":
				rec.X = asFloatPtr(vals[i])
			case "y":
				rec.Y = asFloatPtr(vals[i])
			default:
				rec.Fields[col] = vals[i]
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	metrics.ObserveDBQuery("get_games", db.table, start)
	return records, nil
}

// CountGames returns the serving table's row count.
func (db *DB) CountGames(ctx context.Context) (int, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var count int
	query := "SELECT COUNT(*) FROM " + quoteIdent(db.table)
	if err := db.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		metrics.DBQueryErrors.WithLabelValues("count_games", db.table).Inc()
		return 0, fmt.Errorf("failed to count games: %w", err)
	}

	metrics.ObserveDBQuery("count_games", db.table, start)
	return count, nil
}
