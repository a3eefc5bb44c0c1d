// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package models

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestGameRecordMarshalJSON(t *testing.T) {
	x, y := 1.5, -2.25
	rec := GameRecord{
		ID:   "42",
		Tags: "Action,RPG",
		X:    &x,
		Y:    &y,
		Fields: map[string]interface{}{
			"name":  "Alpha",
			"price": 9.99,
		},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if obj["game_id"] != "42" || obj["tags"] != "Action,RPG" {
		t.Errorf("fixed keys = %v/%v, want 42/Action,RPG", obj["game_id"], obj["tags"])
	}
	if obj["x"] != 1.5 || obj["y"] != -2.25 {
		t.Errorf("coordinates = %v/%v, want 1.5/-2.25", obj["x"], obj["y"])
	}
	// Passthrough fields are flattened into the same object.
	if obj["name"] != "Alpha" {
		t.Errorf("name = %v, want Alpha", obj["name"])
	}
}

func TestGameRecordMarshalJSONNullCoordinates(t *testing.T) {
	rec := GameRecord{ID: "1", Tags: ""}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	for _, key := range []string{"x", "y"} {
		v, present := obj[key]
		if !present {
			t.Errorf("key %q omitted, want explicit null", key)
		}
		if v != nil {
			t.Errorf("%s = %v, want null", key, v)
		}
	}
}

func TestGameRecordMarshalJSONNonFiniteValues(t *testing.T) {
	nan := math.NaN()
	rec := GameRecord{
		ID:   "1",
		Tags: "Action",
		X:    &nan,
		Y:    &nan,
		Fields: map[string]interface{}{
			"original_price": math.NaN(),
			"discount":       float32(math.NaN()),
			"peak_players":   math.Inf(1),
			"min_score":      math.Inf(-1),
			"name":           "Alpha",
			"price":          9.99,
		},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	// Non-finite values serialize as explicit nulls.
	for _, key := range []string{"original_price", "discount", "peak_players", "min_score", "x", "y"} {
		v, present := obj[key]
		if !present {
			t.Errorf("key %q omitted, want explicit null", key)
		}
		if v != nil {
			t.Errorf("%s = %v, want null", key, v)
		}
	}

	// Finite values are untouched.
	if obj["name"] != "Alpha" {
		t.Errorf("name = %v, want Alpha", obj["name"])
	}
	if obj["price"] != 9.99 {
		t.Errorf("price = %v, want 9.99", obj["price"])
	}
}

func TestGameRecordHasCoordinates(t *testing.T) {
	x := 1.0
	tests := []struct {
		name string
		rec  GameRecord
		want bool
	}{
		{name: "both set", rec: GameRecord{X: &x, Y: &x}, want: true},
		{name: "both nil", rec: GameRecord{}, want: false},
		{name: "only x", rec: GameRecord{X: &x}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.HasCoordinates(); got != tt.want {
				t.Errorf("HasCoordinates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGameRecordClone(t *testing.T) {
	x, y := 1.0, 2.0
	orig := GameRecord{
		ID:     "1",
		Tags:   "Action",
		X:      &x,
		Y:      &y,
		Fields: map[string]interface{}{"name": "Alpha"},
	}

	clone := orig.Clone()
	*clone.X = 99
	clone.Fields["name"] = "Mutated"

	if *orig.X != 1.0 {
		t.Errorf("Clone() shares coordinate pointer: orig X = %v", *orig.X)
	}
	if orig.Fields["name"] != "Alpha" {
		t.Errorf("Clone() shares field map: orig name = %v", orig.Fields["name"])
	}
}
