// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package vector

// Normalize rescales a vector to unit Euclidean length in place.
// A zero vector is left unchanged: a record whose tags were all filtered
// away normalizes to the zero vector, which is a degenerate case rather
// than an error.
//
// Unit-normalizing the binary vectors makes the Euclidean distance between
// them proportional to the cosine dissimilarity of the underlying tag sets,
// which is the geometry the reduction stage is expected to preserve.
func Normalize(s *Sparse) {
	norm := s.Norm()
	if norm == 0 {
		return
	}
	s.Scale(1 / norm)
}

// NormalizeAll normalizes a batch of vectors in place.
func NormalizeAll(vs []Sparse) {
	for i := range vs {
		Normalize(&vs[i])
	}
}

// DenseMatrix materializes sparse vectors as a dense row-major matrix for
// the reduction-capability boundary.
func DenseMatrix(vs []Sparse) [][]float64 {
	out := make([][]float64, len(vs))
	for i := range vs {
		out[i] = vs[i].ToDense()
	}
	return out
}
