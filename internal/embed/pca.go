// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package embed

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCA reduces dimensionality by projecting the mean-centered input onto its
// top principal components (thin SVD). The projection preserves the global
// distance structure of the unit-normalized tag vectors, and being fully
// deterministic it satisfies the seed contract trivially: Config.Seed,
// Neighbors and MinDist are accepted and ignored.
type PCA struct{}

// NewPCA creates a PCA reducer.
func NewPCA() *PCA {
	return &PCA{}
}

// Reduce implements the Reducer contract.
func (p *PCA) Reduce(ctx context.Context, matrix [][]float64, cfg Config) ([][]float64, error) {
	rows, cols, err := checkMatrix(matrix)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(rows, cols); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := make([]float64, rows*cols)
	for i, row := range matrix {
		copy(data[i*cols:(i+1)*cols], row)
	}
	x := mat.NewDense(rows, cols, data)

	// Mean-center each column
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		mean := stat.Mean(col, nil)
		for i := 0; i < rows; i++ {
			x.Set(i, j, x.At(i, j)-mean)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd factorization failed for %dx%d matrix", rows, cols)
	}

	// V holds the right singular vectors in its columns.
	var v mat.Dense
	svd.VTo(&v)

	_, vc := v.Dims()
	if vc < cfg.Components {
		return nil, fmt.Errorf("%w: only %d singular vectors for %d components",
			ErrInsufficientData, vc, cfg.Components)
	}

	// Principal component matrix, columns oriented so the loading with the
	// largest magnitude is positive. SVD solutions are unique only up to
	// sign; fixing orientation keeps layouts stable between runs.
	pc := mat.NewDense(cols, cfg.Components, nil)
	for c := 0; c < cfg.Components; c++ {
		sign := dominantSign(&v, c, cols)
		for j := 0; j < cols; j++ {
			pc.Set(j, c, sign*v.At(j, c))
		}
	}

	var projected mat.Dense
	projected.Mul(x, pc)

	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		coords := make([]float64, cfg.Components)
		for c := 0; c < cfg.Components; c++ {
			coords[c] = projected.At(i, c)
		}
		out[i] = coords
	}
	return out, nil
}

// dominantSign returns +1 or -1 so that column c of v, multiplied by it, has
// its largest-magnitude entry positive.
func dominantSign(v *mat.Dense, c, cols int) float64 {
	var maxAbs, val float64
	for j := 0; j < cols; j++ {
		e := v.At(j, c)
		if a := math.Abs(e); a > maxAbs {
			maxAbs = a
			val = e
		}
	}
	if val < 0 {
		return -1
	}
	return 1
}
