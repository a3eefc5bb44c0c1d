// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package vector

import (
	"math"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		entries map[int]float64
		// wantNorm is the expected norm after normalization.
		wantNorm float64
	}{
		{name: "single entry already unit", entries: map[int]float64{0: 1}, wantNorm: 1},
		{name: "two binary entries", entries: map[int]float64{0: 1, 3: 1}, wantNorm: 1},
		{name: "arbitrary magnitudes", entries: map[int]float64{1: 3, 2: 4}, wantNorm: 1},
		{name: "zero vector unchanged", entries: nil, wantNorm: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSparse(5)
			for idx, val := range tt.entries {
				s.Set(idx, val)
			}
			Normalize(&s)
			if got := s.Norm(); math.Abs(got-tt.wantNorm) > 1e-12 {
				t.Errorf("Norm() after Normalize = %v, want %v", got, tt.wantNorm)
			}
		})
	}
}

func TestNormalizePreservesDirection(t *testing.T) {
	s := NewSparse(3)
	s.Set(0, 3)
	s.Set(2, 4)

	Normalize(&s)

	if got, want := s.Get(0), 0.6; math.Abs(got-want) > 1e-12 {
		t.Errorf("Get(0) = %v, want %v", got, want)
	}
	if got, want := s.Get(2), 0.8; math.Abs(got-want) > 1e-12 {
		t.Errorf("Get(2) = %v, want %v", got, want)
	}
}

func TestNormalizeAll(t *testing.T) {
	a := NewSparse(2)
	a.Set(0, 2)
	b := NewSparse(2) // zero vector
	vs := []Sparse{a, b}

	NormalizeAll(vs)

	if got := vs[0].Norm(); math.Abs(got-1) > 1e-12 {
		t.Errorf("first vector norm = %v, want 1", got)
	}
	if got := vs[1].Norm(); got != 0 {
		t.Errorf("zero vector norm = %v, want 0", got)
	}
}

func TestDenseMatrix(t *testing.T) {
	a := NewSparse(3)
	a.Set(0, 1)
	b := NewSparse(3)
	b.Set(2, 1)

	got := DenseMatrix([]Sparse{a, b})
	want := [][]float64{{1, 0, 0}, {0, 0, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DenseMatrix() = %v, want %v", got, want)
	}
}
