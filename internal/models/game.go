// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package models

import (
	"math"

	"github.com/goccy/go-json"
)

// GameRecord represents one row of the game catalog.
//
// ID and Tags are the two columns the embedding pipeline understands; every
// other source column is carried in Fields and passes through the pipeline
// unmodified. X and Y hold the 2D embedding coordinates and are nil for
// records that were excluded from vectorization.
//
// Invariant: X and Y are either both set or both nil, never one without the
// other.
type GameRecord struct {
	// ID is the unique record identifier (the source catalog's id column).
	ID string

	// Tags is the comma-separated tag string. Before the pipeline runs this
	// holds the raw source value; after the merge step it holds the cleaned
	// representation for every row, tagged or not.
	Tags string

	// X, Y are the embedding coordinates, nil when the record carried no
	// usable tags.
	X *float64
	Y *float64

	// Fields holds all passthrough columns keyed by column name.
	// Values use the database driver's native Go types; nil marks NULL.
	Fields map[string]interface{}
}

// HasCoordinates reports whether the record was assigned an embedding.
func (r *GameRecord) HasCoordinates() bool {
	return r.X != nil && r.Y != nil
}

// Clone returns a deep copy of the record. Coordinate pointers and the
// passthrough field map are duplicated so mutations on the copy never leak
// back into the original.
func (r *GameRecord) Clone() GameRecord {
	out := GameRecord{
		ID:   r.ID,
		Tags: r.Tags,
	}
	if r.X != nil {
		x := *r.X
		out.X = &x
	}
	if r.Y != nil {
		y := *r.Y
		out.Y = &y
	}
	if r.Fields != nil {
		out.Fields = make(map[string]interface{}, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

// MarshalJSON flattens the record into a single JSON object: the fixed
// columns plus every passthrough field. Missing numeric values and
// coordinates serialize as null, never NaN, for cross-system compatibility.
// Parquet writers commonly encode missing floats as NaN, and JSON has no
// representation for non-finite numbers, so they are sanitized here rather
// than failing the whole page.
func (r GameRecord) MarshalJSON() ([]byte, error) {
	obj := make(map[string]interface{}, len(r.Fields)+4)
	for k, v := range r.Fields {
		obj[k] = sanitizeNumeric(v)
	}
	obj["game_id"] = r.ID
	obj["tags"] = r.Tags
	obj["x"] = sanitizeCoordinate(r.X)
	obj["y"] = sanitizeCoordinate(r.Y)
	return json.Marshal(obj)
}

// sanitizeNumeric maps non-finite float values to nil.
func sanitizeNumeric(v interface{}) interface{} {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	}
	return v
}

// sanitizeCoordinate maps a missing or non-finite coordinate to nil.
func sanitizeCoordinate(p *float64) interface{} {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return nil
	}
	return *p
}
