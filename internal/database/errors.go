// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package database

import (
	"errors"
	"io"

	"github.com/gameatlas/gameatlas/internal/logging"
)

// Input errors surfaced when the source catalog cannot serve a pipeline run.
var (
	// ErrMissingColumn means the source catalog lacks the identifier or tag
	// column it is required to contain.
	ErrMissingColumn = errors.New("source catalog is missing a required column")

	// ErrNullID means a source row carries a NULL identifier, which would
	// make the coordinate merge ambiguous.
	ErrNullID = errors.New("source catalog row has a NULL identifier")

	// ErrColumnCollision means two source columns normalize to the same
	// storage name.
	ErrColumnCollision = errors.New("source columns collide after name normalization")
)

// closeWithLog closes a resource and logs any error. Use for cleanup where
// errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error. Use in
// error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // cleanup is best-effort
	}
}
