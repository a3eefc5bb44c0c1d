// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

// Package tags converts raw comma-separated tag strings into clean token
// lists and builds the deterministic vocabulary used as feature-vector
// columns.
package tags

import (
	"strings"
)

// Separator joins multi-word tags into single tokens. "Early Access"
// becomes "Early_Access", so tokens never contain the comma field separator
// or spaces.
const Separator = "_"

// Normalizer cleans a record's raw tag string: intra-tag spaces are replaced
// by Separator and tags in the exclusion set are dropped. Exclusion matching
// is case-insensitive against the cleaned token form, so "early access" is
// removed by an exclusion entry of "Early_Access".
type Normalizer struct {
	excluded map[string]struct{}
}

// NewNormalizer creates a Normalizer with the given exclusion set.
// Exclusion entries are themselves cleaned, so both "Early Access" and
// "Early_Access" configure the same exclusion.
func NewNormalizer(excluded []string) *Normalizer {
	set := make(map[string]struct{}, len(excluded))
	for _, e := range excluded {
		if tok := cleanToken(e); tok != "" {
			set[strings.ToLower(tok)] = struct{}{}
		}
	}
	return &Normalizer{excluded: set}
}

// Clean converts a raw tag string into an ordered list of cleaned tokens.
// A nil-equivalent (empty), malformed, or entirely-excluded input yields an
// empty slice; that is a valid outcome, not an error.
func (n *Normalizer) Clean(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		tok := cleanToken(part)
		if tok == "" {
			continue
		}
		if _, drop := n.excluded[strings.ToLower(tok)]; drop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// CleanString returns the cleaned comma-separated representation of a raw
// tag string. This is the form written back to the output catalog's tag
// column for every row.
func (n *Normalizer) CleanString(raw string) string {
	return strings.Join(n.Clean(raw), ",")
}

// cleanToken trims a single tag and joins internal spaces with Separator.
func cleanToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, Separator)
}
