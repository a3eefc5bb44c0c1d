// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package pipeline

import (
	"fmt"

	"github.com/gameatlas/gameatlas/internal/models"
)

// mergeCoordinates attaches embedding coordinates to records in place,
// keyed strictly by record identifier: ids[i] names the record that owns
// coords[i]. Records absent from ids keep nil coordinates; no record is
// added, dropped or duplicated, and no record gains a coordinate it was
// not assigned.
//
// Each coordinate row must have exactly 2 entries; x and y are set together
// or not at all.
func mergeCoordinates(records []models.GameRecord, ids []string, coords [][]float64) error {
	if len(ids) != len(coords) {
		return fmt.Errorf("embedding size mismatch: %d ids, %d coordinate rows",
			len(ids), len(coords))
	}

	type point struct{ x, y float64 }
	byID := make(map[string]point, len(ids))
	for i, id := range ids {
		if len(coords[i]) != 2 {
			return fmt.Errorf("coordinate row %d has %d components, want 2", i, len(coords[i]))
		}
		byID[id] = point{x: coords[i][0], y: coords[i][1]}
	}

	for i := range records {
		pt, ok := byID[records[i].ID]
		if !ok {
			records[i].X = nil
			records[i].Y = nil
			continue
		}
		x, y := pt.x, pt.y
		records[i].X = &x
		records[i].Y = &y
	}

	return nil
}
