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

func TestSparseSetGet(t *testing.T) {
	s := NewSparse(5)

	s.Set(3, 1)
	s.Set(0, 2)
	s.Set(3, 4) // overwrite

	if got := s.Get(3); got != 4 {
		t.Errorf("Get(3) = %v, want 4", got)
	}
	if got := s.Get(0); got != 2 {
		t.Errorf("Get(0) = %v, want 2", got)
	}
	if got := s.Get(1); got != 0 {
		t.Errorf("Get(1) = %v, want 0", got)
	}
	if got := s.Nnz(); got != 2 {
		t.Errorf("Nnz() = %d, want 2", got)
	}

	// Indices stay sorted regardless of insertion order.
	if !reflect.DeepEqual(s.Indices, []int{0, 3}) {
		t.Errorf("Indices = %v, want [0 3]", s.Indices)
	}
}

func TestSparseSetOutOfRange(t *testing.T) {
	s := NewSparse(3)
	s.Set(-1, 1)
	s.Set(3, 1)
	if s.Nnz() != 0 {
		t.Errorf("out-of-range Set stored entries: Nnz() = %d", s.Nnz())
	}
}

func TestSparseNorm(t *testing.T) {
	tests := []struct {
		name    string
		entries map[int]float64
		want    float64
	}{
		{name: "empty vector", entries: nil, want: 0},
		{name: "single unit entry", entries: map[int]float64{2: 1}, want: 1},
		{name: "3-4-5 triangle", entries: map[int]float64{0: 3, 1: 4}, want: 5},
		{name: "two binary entries", entries: map[int]float64{0: 1, 4: 1}, want: math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSparse(5)
			for idx, val := range tt.entries {
				s.Set(idx, val)
			}
			if got := s.Norm(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSparseScale(t *testing.T) {
	s := NewSparse(4)
	s.Set(1, 2)
	s.Set(3, 4)

	s.Scale(0.5)

	if got := s.Get(1); got != 1 {
		t.Errorf("Get(1) after Scale = %v, want 1", got)
	}
	if got := s.Get(3); got != 2 {
		t.Errorf("Get(3) after Scale = %v, want 2", got)
	}
}

func TestSparseToDense(t *testing.T) {
	s := NewSparse(4)
	s.Set(0, 1)
	s.Set(2, 3)

	want := []float64{1, 0, 3, 0}
	if got := s.ToDense(); !reflect.DeepEqual(got, want) {
		t.Errorf("ToDense() = %v, want %v", got, want)
	}
}
