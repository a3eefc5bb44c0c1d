// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

package tags

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildVocabulary(t *testing.T) {
	tests := []struct {
		name    string
		tagSets [][]string
		want    []string
		wantErr error
	}{
		{
			name:    "sorted distinct terms",
			tagSets: [][]string{{"RPG", "Action"}, {"Action", "Indie"}},
			want:    []string{"Action", "Indie", "RPG"},
		},
		{
			name:    "empty sets ignored",
			tagSets: [][]string{nil, {}, {"Action"}},
			want:    []string{"Action"},
		},
		{
			name:    "empty corpus",
			tagSets: [][]string{nil, {}},
			wantErr: ErrEmptyCorpus,
		},
		{
			name:    "no sets at all",
			tagSets: nil,
			wantErr: ErrEmptyCorpus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := BuildVocabulary(tt.tagSets)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildVocabulary() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildVocabulary() unexpected error: %v", err)
			}
			if got := v.Terms(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Terms() = %v, want %v", got, tt.want)
			}
			if v.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", v.Len(), len(tt.want))
			}
		})
	}
}

func TestBuildVocabularyDeterministic(t *testing.T) {
	// The vocabulary must be a pure function of corpus content; permuting
	// the records must yield an identical ordering and index mapping.
	a, err := BuildVocabulary([][]string{{"RPG", "Action"}, {"Indie"}, {"Zombie", "Action"}})
	if err != nil {
		t.Fatalf("BuildVocabulary() error: %v", err)
	}
	b, err := BuildVocabulary([][]string{{"Zombie", "Action"}, {"RPG", "Action"}, {"Indie"}})
	if err != nil {
		t.Fatalf("BuildVocabulary() error: %v", err)
	}

	if !reflect.DeepEqual(a.Terms(), b.Terms()) {
		t.Errorf("permuted corpus produced different terms: %v vs %v", a.Terms(), b.Terms())
	}
	for _, term := range a.Terms() {
		ai, _ := a.Index(term)
		bi, ok := b.Index(term)
		if !ok || ai != bi {
			t.Errorf("Index(%q) mismatch: %d vs %d (present=%v)", term, ai, bi, ok)
		}
	}
}

func TestVocabularyIndex(t *testing.T) {
	v, err := BuildVocabulary([][]string{{"Action", "Indie", "RPG"}})
	if err != nil {
		t.Fatalf("BuildVocabulary() error: %v", err)
	}

	for i, term := range []string{"Action", "Indie", "RPG"} {
		got, ok := v.Index(term)
		if !ok || got != i {
			t.Errorf("Index(%q) = (%d, %v), want (%d, true)", term, got, ok, i)
		}
	}
	if _, ok := v.Index("Unknown"); ok {
		t.Error("Index(Unknown) reported present, want absent")
	}
}

func TestVocabularyTermsCopy(t *testing.T) {
	v, err := BuildVocabulary([][]string{{"Action", "RPG"}})
	if err != nil {
		t.Fatalf("BuildVocabulary() error: %v", err)
	}

	terms := v.Terms()
	terms[0] = "mutated"
	if got := v.Terms()[0]; got != "Action" {
		t.Errorf("Terms() leaked internal slice: got %q after mutation", got)
	}
}
