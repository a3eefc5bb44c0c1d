// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

// Package embed defines the dimensionality-reduction capability consumed by
// the pipeline and provides a deterministic PCA implementation.
//
// The pipeline treats reduction as a black box: a matrix of normalized
// vectors and a configuration go in, 2D coordinates come out. Any
// manifold-learning technique satisfying the neighborhood-preservation and
// seed-determinism contract can be substituted.
package embed

import (
	"context"
	"errors"
	"fmt"
)

// Reduction errors.
var (
	// ErrEmptyMatrix is returned when the input matrix has no rows or no
	// columns.
	ErrEmptyMatrix = errors.New("input matrix is empty")

	// ErrRaggedMatrix is returned when input rows have differing lengths.
	ErrRaggedMatrix = errors.New("input matrix rows have differing lengths")

	// ErrInsufficientData is returned when the matrix is too small for the
	// requested number of output components.
	ErrInsufficientData = errors.New("insufficient data for requested components")
)

// Config carries the reduction parameters. All values are explicit rather
// than embedded constants so runs are reproducible.
type Config struct {
	// Components is the output dimensionality. The pipeline always requests 2.
	Components int

	// Neighbors is the neighborhood size considered when balancing local
	// versus global structure. Reducers that do not model neighborhoods
	// accept and ignore it.
	Neighbors int

	// MinDist is the minimum distance between points in the output layout.
	// Reducers that do not model it accept and ignore it.
	MinDist float64

	// Seed makes stochastic reducers deterministic for a fixed library
	// version. Deterministic reducers accept and ignore it.
	Seed int64
}

// DefaultConfig returns the reduction defaults used by the batch job.
func DefaultConfig() Config {
	return Config{
		Components: 2,
		Neighbors:  15,
		MinDist:    0.1,
		Seed:       42,
	}
}

// Validate checks the configuration against the given matrix shape.
func (c Config) Validate(rows, cols int) error {
	if c.Components < 1 {
		return fmt.Errorf("components must be >= 1, got %d", c.Components)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be >= 1, got %d", c.Neighbors)
	}
	if c.MinDist < 0 {
		return fmt.Errorf("min_dist must be >= 0, got %f", c.MinDist)
	}
	if rows < c.Components || cols < c.Components {
		return fmt.Errorf("%w: %dx%d matrix, %d components",
			ErrInsufficientData, rows, cols, c.Components)
	}
	return nil
}

// Reducer reduces an NxD matrix of normalized vectors to NxComponents
// coordinates such that rows whose inputs are close end up close in the
// output. For a fixed seed and library version the mapping is
// deterministic; determinism across library versions is not guaranteed.
type Reducer interface {
	Reduce(ctx context.Context, matrix [][]float64, cfg Config) ([][]float64, error)
}

// checkMatrix validates matrix shape and returns its dimensions.
func checkMatrix(matrix [][]float64) (rows, cols int, err error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return 0, 0, ErrEmptyMatrix
	}
	rows = len(matrix)
	cols = len(matrix[0])
	for i, row := range matrix {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrRaggedMatrix, i, len(row), cols)
		}
	}
	return rows, cols, nil
}
