// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package tags

import (
	"errors"
	"sort"
)

// ErrEmptyCorpus is returned when vocabulary construction finds no tags at
// all, which would make every feature vector zero-length.
var ErrEmptyCorpus = errors.New("tag corpus is empty: no record has a usable tag")

// Vocabulary is the deterministic ordered set of distinct tags across the
// corpus. Each tag maps to a stable column index in the feature matrix.
//
// Construction is a pure function of the corpus content: tags are collected
// into a set and sorted lexicographically, so permuting the input records
// yields an identical vocabulary and mapping. Vector columns stay comparable
// across runs.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// BuildVocabulary derives the vocabulary from the cleaned tag sets of all
// tagged records. Returns ErrEmptyCorpus when no set contains a tag.
func BuildVocabulary(tagSets [][]string) (*Vocabulary, error) {
	distinct := make(map[string]struct{})
	for _, set := range tagSets {
		for _, tag := range set {
			if tag != "" {
				distinct[tag] = struct{}{}
			}
		}
	}

	if len(distinct) == 0 {
		return nil, ErrEmptyCorpus
	}

	terms := make([]string, 0, len(distinct))
	for tag := range distinct {
		terms = append(terms, tag)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, tag := range terms {
		index[tag] = i
	}

	return &Vocabulary{terms: terms, index: index}, nil
}

// Len returns the number of distinct tags.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns the ordered tag list. The returned slice is a copy.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Index returns the column index of a tag and whether it is present.
func (v *Vocabulary) Index(tag string) (int, bool) {
	i, ok := v.index[tag]
	return i, ok
}
