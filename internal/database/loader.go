// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gameatlas/gameatlas/internal/logging"
	"github.com/gameatlas/gameatlas/internal/metrics"
	"github.com/gameatlas/gameatlas/internal/models"
)

// insertBatchSize bounds the number of rows per multi-row INSERT so the
// placeholder count stays reasonable for wide catalogs.
const insertBatchSize = 500

// servingColumn pairs a storage column name with the passthrough field key
// it is read from ("" for the fixed columns).
type servingColumn struct {
	name     string
	fieldKey string
	sqlType  string
}

// ReplaceCatalog atomically replaces the full contents of the serving table
// with the merged output catalog. Column names are normalized to lowercase
// with spaces and punctuation stripped for storage compatibility; the two
// coordinate columns are appended as nullable DOUBLEs.
//
// The whole replacement runs in one transaction: either the new catalog is
// fully loaded or the previous serving table survives untouched.
func (db *DB) ReplaceCatalog(ctx context.Context, records []models.GameRecord) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	columns, err := db.servingColumns(records)
	if err != nil {
		return err
	}

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin bulk load transaction: %w", err)
	}
	defer func() {
		// No-op after a successful Commit.
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, createTableSQL(db.table, columns)); err != nil {
		metrics.DBQueryErrors.WithLabelValues("replace_catalog", db.table).Inc()
		return fmt.Errorf("failed to create serving table: %w", err)
	}

	for batchStart := 0; batchStart < len(records); batchStart += insertBatchSize {
		end := batchStart + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[batchStart:end]

		query, args := insertSQL(db.table, columns, batch, db.idCol, db.tagCol)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			metrics.DBQueryErrors.WithLabelValues("replace_catalog", db.table).Inc()
			return fmt.Errorf("failed to insert rows %d-%d: %w", batchStart, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk load: %w", err)
	}

	metrics.ObserveDBQuery("replace_catalog", db.table, start)
	logging.Info().
		Str("table", db.table).
		Int("rows", len(records)).
		Int("columns", len(columns)).
		Msg("Serving table replaced")
	return nil
}

// servingColumns derives the serving table layout from the output records:
// identifier, tags, sorted passthrough columns, then x and y. Types are
// inferred from the first non-nil value per column.
func (db *DB) servingColumns(records []models.GameRecord) ([]servingColumn, error) {
	// Union of passthrough field keys across all records.
	fieldKeys := make(map[string]struct{})
	for i := range records {
		for k := range records[i].Fields {
			fieldKeys[k] = struct{}{}
		}
	}

	reserved := map[string]string{
		db.idCol:  "identifier column",
		db.tagCol: "tag column",
		"x":       "coordinate column",
		"y":       "coordinate column",
	}

	normalized := make(map[string]string, len(fieldKeys)) // storage name -> field key
	for key := range fieldKeys {
		name := normalizeColumn(key)
		if name == "" {
			return nil, fmt.Errorf("%w: column %q normalizes to an empty name", ErrColumnCollision, key)
		}
		if what, taken := reserved[name]; taken {
			return nil, fmt.Errorf("%w: column %q collides with the %s %q",
				ErrColumnCollision, key, what, name)
		}
		if prev, taken := normalized[name]; taken {
			return nil, fmt.Errorf("%w: columns %q and %q both normalize to %q",
				ErrColumnCollision, prev, key, name)
		}
		normalized[name] = key
	}

	names := make([]string, 0, len(normalized))
	for name := range normalized {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make([]servingColumn, 0, len(names)+4)
	columns = append(columns,
		servingColumn{name: db.idCol, sqlType: "VARCHAR"},
		servingColumn{name: db.tagCol, sqlType: "VARCHAR"},
	)
	for _, name := range names {
		key := normalized[name]
		columns = append(columns, servingColumn{
			name:     name,
			fieldKey: key,
			sqlType:  inferColumnType(records, key),
		})
	}
	columns = append(columns,
		servingColumn{name: "x", sqlType: "DOUBLE"},
		servingColumn{name: "y", sqlType: "DOUBLE"},
	)
	return columns, nil
}

// inferColumnType picks the SQL type from the first non-nil value of a
// passthrough column.
func inferColumnType(records []models.GameRecord, key string) string {
	for i := range records {
		if v, ok := records[i].Fields[key]; ok && v != nil {
			return sqlType(v)
		}
	}
	return "VARCHAR"
}

// createTableSQL renders the CREATE OR REPLACE TABLE statement.
func createTableSQL(table string, columns []servingColumn) string {
	var b strings.Builder
	b.WriteString("CREATE OR REPLACE TABLE ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(col.name))
		b.WriteByte(' ')
		b.WriteString(col.sqlType)
	}
	b.WriteString(")")
	return b.String()
}

// insertSQL renders one multi-row INSERT statement and its arguments.
func insertSQL(table string, columns []servingColumn, batch []models.GameRecord, idCol, tagCol string) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(col.name))
	}
	b.WriteString(") VALUES ")

	rowPlaceholder := "(" + strings.Repeat("?, ", len(columns)-1) + "?)"
	args := make([]interface{}, 0, len(batch)*len(columns))
	for i := range batch {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(rowPlaceholder)
		for _, col := range columns {
			switch col.name {
			case idCol:
				args = append(args, batch[i].ID)
			case tagCol:
				args = append(args, batch[i].Tags)
			case "x":
				args = append(args, floatArg(batch[i].X))
			case "y":
				args = append(args, floatArg(batch[i].Y))
			default:
				args = append(args, batch[i].Fields[col.fieldKey])
			}
		}
	}
	return b.String(), args
}

// floatArg converts an optional coordinate to a driver argument.
func floatArg(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// ExportParquet writes the serving table to a Parquet file.
func (db *DB) ExportParquet(ctx context.Context, path string) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	query := fmt.Sprintf("COPY (SELECT * FROM %s ORDER BY %s) TO %s (FORMAT PARQUET)",
		quoteIdent(db.table), quoteIdent(db.idCol), quoteLiteral(path))
	if _, err := db.conn.ExecContext(ctx, query); err != nil {
		metrics.DBQueryErrors.WithLabelValues("export_parquet", db.table).Inc()
		return fmt.Errorf("failed to export parquet to %s: %w", path, err)
	}

	metrics.ObserveDBQuery("export_parquet", db.table, start)
	return nil
}
