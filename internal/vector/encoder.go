// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package vector

import (
	"github.com/gameatlas/gameatlas/internal/tags"
)

// Encoder turns cleaned tag sets into binary presence vectors over a fixed
// vocabulary (a bag of tags).
type Encoder struct {
	vocab *tags.Vocabulary
}

// NewEncoder creates an encoder over the given vocabulary.
func NewEncoder(vocab *tags.Vocabulary) *Encoder {
	return &Encoder{vocab: vocab}
}

// Encode produces the binary presence vector of one record's cleaned tag set.
// Presence is binary: a tag appearing multiple times still contributes a
// single 1. Tags absent from the vocabulary are ignored rather than
// treated as an error.
func (e *Encoder) Encode(tagSet []string) Sparse {
	vec := NewSparse(e.vocab.Len())
	for _, tag := range tagSet {
		if idx, ok := e.vocab.Index(tag); ok {
			vec.Set(idx, 1)
		}
	}
	return vec
}

// EncodeAll encodes a batch of tag sets in order.
func (e *Encoder) EncodeAll(tagSets [][]string) []Sparse {
	out := make([]Sparse, len(tagSets))
	for i, set := range tagSets {
		out[i] = e.Encode(set)
	}
	return out
}
