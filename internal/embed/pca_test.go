// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package embed

import (
	"context"
	"errors"
	"math"
	"testing"
)

func testMatrix() [][]float64 {
	// Four unit-normalized binary tag vectors over a 3-tag vocabulary.
	s := 1 / math.Sqrt2
	return [][]float64{
		{s, s, 0},
		{s, 0, s},
		{0, s, s},
		{1, 0, 0},
	}
}

func TestPCAReduceShape(t *testing.T) {
	out, err := NewPCA().Reduce(context.Background(), testMatrix(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("Reduce() returned %d rows, want 4", len(out))
	}
	for i, coords := range out {
		if len(coords) != 2 {
			t.Errorf("row %d has %d components, want 2", i, len(coords))
		}
		for c, v := range coords {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("row %d component %d is %v", i, c, v)
			}
		}
	}
}

func TestPCAReduceDeterministic(t *testing.T) {
	ctx := context.Background()
	a, err := NewPCA().Reduce(ctx, testMatrix(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}
	b, err := NewPCA().Reduce(ctx, testMatrix(), DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	for i := range a {
		for c := range a[i] {
			if a[i][c] != b[i][c] {
				t.Errorf("row %d component %d differs between runs: %v vs %v",
					i, c, a[i][c], b[i][c])
			}
		}
	}
}

func TestPCAReduceIdenticalRowsCoincide(t *testing.T) {
	s := 1 / math.Sqrt2
	matrix := [][]float64{
		{s, s, 0},
		{s, s, 0}, // identical tag set
		{0, 0, 1},
		{0, 1, 0},
	}

	out, err := NewPCA().Reduce(context.Background(), matrix, DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	for c := 0; c < 2; c++ {
		if d := math.Abs(out[0][c] - out[1][c]); d > 1e-9 {
			t.Errorf("identical input rows diverge on component %d by %v", c, d)
		}
	}
}

func TestPCAReducePreservesSeparation(t *testing.T) {
	// Two tight clusters far apart in tag space must stay separated in 2D.
	matrix := [][]float64{
		{1, 0, 0, 0},
		{0.9, 0.1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0.9, 0.1},
	}

	out, err := NewPCA().Reduce(context.Background(), matrix, DefaultConfig())
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}

	dist := func(a, b []float64) float64 {
		dx, dy := a[0]-b[0], a[1]-b[1]
		return math.Sqrt(dx*dx + dy*dy)
	}

	within := dist(out[0], out[1])
	between := dist(out[0], out[2])
	if within >= between {
		t.Errorf("within-cluster distance %v >= between-cluster distance %v", within, between)
	}
}

func TestPCAReduceErrors(t *testing.T) {
	tests := []struct {
		name    string
		matrix  [][]float64
		cfg     Config
		wantErr error
	}{
		{
			name:    "empty matrix",
			matrix:  nil,
			cfg:     DefaultConfig(),
			wantErr: ErrEmptyMatrix,
		},
		{
			name:    "empty rows",
			matrix:  [][]float64{{}},
			cfg:     DefaultConfig(),
			wantErr: ErrEmptyMatrix,
		},
		{
			name:    "ragged matrix",
			matrix:  [][]float64{{1, 0}, {1}},
			cfg:     DefaultConfig(),
			wantErr: ErrRaggedMatrix,
		},
		{
			name:    "fewer rows than components",
			matrix:  [][]float64{{1, 0, 0}},
			cfg:     DefaultConfig(),
			wantErr: ErrInsufficientData,
		},
		{
			name:    "fewer columns than components",
			matrix:  [][]float64{{1}, {0}},
			cfg:     DefaultConfig(),
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPCA().Reduce(context.Background(), tt.matrix, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Reduce() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPCAReduceCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPCA().Reduce(ctx, testMatrix(), DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Reduce() error = %v, want context.Canceled", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		rows    int
		cols    int
		wantErr bool
	}{
		{name: "valid", cfg: DefaultConfig(), rows: 10, cols: 5, wantErr: false},
		{name: "zero components", cfg: Config{Components: 0, Neighbors: 15, MinDist: 0.1}, rows: 10, cols: 5, wantErr: true},
		{name: "zero neighbors", cfg: Config{Components: 2, Neighbors: 0, MinDist: 0.1}, rows: 10, cols: 5, wantErr: true},
		{name: "negative min_dist", cfg: Config{Components: 2, Neighbors: 15, MinDist: -0.1}, rows: 10, cols: 5, wantErr: true},
		{name: "too few rows", cfg: DefaultConfig(), rows: 1, cols: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.rows, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
