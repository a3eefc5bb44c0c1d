// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

// Package vector provides the sparse feature-vector representation of tag
// sets and their unit-length normalization.
//
// The binary tag matrix is naturally sparse: each record uses a handful of
// tags out of a potentially large vocabulary. Vectors stay sparse through
// encoding and normalization and are only materialized densely at the
// reduction-capability boundary.
package vector

import (
	"math"
	"sort"
)

// Sparse is a sparse float64 vector of fixed dimension. Indices are kept
// sorted and unique.
type Sparse struct {
	Indices []int
	Values  []float64
	Dim     int
}

// NewSparse creates an empty sparse vector with the given dimension.
func NewSparse(dim int) Sparse {
	return Sparse{Dim: dim}
}

// Set stores a value at the given index, replacing any existing entry.
// Out-of-range indices are ignored.
func (s *Sparse) Set(idx int, val float64) {
	if idx < 0 || idx >= s.Dim {
		return
	}
	pos := sort.SearchInts(s.Indices, idx)
	if pos < len(s.Indices) && s.Indices[pos] == idx {
		s.Values[pos] = val
		return
	}
	s.Indices = append(s.Indices, 0)
	s.Values = append(s.Values, 0)
	copy(s.Indices[pos+1:], s.Indices[pos:])
	copy(s.Values[pos+1:], s.Values[pos:])
	s.Indices[pos] = idx
	s.Values[pos] = val
}

// Get returns the value at the given index (zero when absent).
func (s *Sparse) Get(idx int) float64 {
	pos := sort.SearchInts(s.Indices, idx)
	if pos < len(s.Indices) && s.Indices[pos] == idx {
		return s.Values[pos]
	}
	return 0
}

// Nnz returns the number of non-zero entries.
func (s *Sparse) Nnz() int {
	return len(s.Indices)
}

// Norm returns the Euclidean (L2) norm of the vector.
func (s *Sparse) Norm() float64 {
	var sum float64
	for _, v := range s.Values {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Scale multiplies every stored value by f.
func (s *Sparse) Scale(f float64) {
	for i := range s.Values {
		s.Values[i] *= f
	}
}

// ToDense converts to a dense float64 slice of length Dim.
func (s *Sparse) ToDense() []float64 {
	dense := make([]float64, s.Dim)
	for i, idx := range s.Indices {
		dense[idx] = s.Values[i]
	}
	return dense
}
