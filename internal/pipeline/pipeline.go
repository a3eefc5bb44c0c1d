// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

// Package pipeline orchestrates one offline embedding batch: raw catalog ->
// cleaned tags -> vocabulary -> binary matrix -> unit-normalized matrix ->
// 2D embedding -> merged catalog.
//
// A run either completes with a full-length output catalog (partial
// coordinate coverage included by design) or fails with no output at all.
// No state is shared across runs; reproducibility rests entirely on the
// corpus, the exclusion set and the reducer seed.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gameatlas/gameatlas/internal/embed"
	"github.com/gameatlas/gameatlas/internal/logging"
	"github.com/gameatlas/gameatlas/internal/metrics"
	"github.com/gameatlas/gameatlas/internal/models"
	"github.com/gameatlas/gameatlas/internal/tags"
	"github.com/gameatlas/gameatlas/internal/vector"
)

// Fatal pipeline errors. Each aborts the run before any output is produced.
var (
	// ErrNoTaggedRecords means no record yielded a non-empty cleaned tag
	// set, leaving nothing to vectorize.
	ErrNoTaggedRecords = errors.New("no record has a non-empty cleaned tag set")

	// ErrDuplicateID means the source catalog contains the same identifier
	// more than once, which would make the coordinate merge ambiguous.
	ErrDuplicateID = errors.New("duplicate record identifier in source catalog")
)

// Config carries one run's parameters.
type Config struct {
	// ExcludedTags is the tag exclusion set, applied before vectorization.
	ExcludedTags []string

	// Reduce configures the dimensionality reducer.
	Reduce embed.Config
}

// Result describes a completed run.
type Result struct {
	// Records is the merged output catalog: same row count as the input,
	// cleaned tags on every row, coordinates on embedded rows.
	Records []models.GameRecord

	// Total is the input row count, Tagged the number of vectorized rows.
	Total  int
	Tagged int

	// VocabularySize is the number of distinct tags after exclusion.
	VocabularySize int
}

// Pipeline runs the embedding batch. It is a single-threaded, single-pass
// computation; one Pipeline value should not be used concurrently.
type Pipeline struct {
	cfg        Config
	normalizer *tags.Normalizer
	reducer    embed.Reducer
}

// New creates a pipeline with the given configuration and reducer.
func New(cfg Config, reducer embed.Reducer) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		normalizer: tags.NewNormalizer(cfg.ExcludedTags),
		reducer:    reducer,
	}
}

// Run executes the batch over one catalog load. The input slice is not
// mutated; the returned records are copies.
//
// Failure modes (no output produced): duplicate identifiers, zero tagged
// records after filtering, and reducer failure. Per-record anomalies such as
// empty or malformed tag strings are not errors; those records simply end up
// with null coordinates.
func (p *Pipeline) Run(ctx context.Context, records []models.GameRecord) (*Result, error) {
	runLog := logging.With().
		Str("component", "pipeline").
		Str("run_id", uuid.New().String()).
		Logger()

	runLog.Info().Int("records", len(records)).Msg("Pipeline run starting")

	if err := checkUniqueIDs(records); err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	// Stage 1: clean every record's tag string; collect the tagged subset.
	start := time.Now()
	out := make([]models.GameRecord, len(records))
	var taggedIDs []string
	var corpus [][]string
	for i := range records {
		out[i] = records[i].Clone()
		cleaned := p.normalizer.Clean(records[i].Tags)
		out[i].Tags = joinTags(cleaned)
		out[i].X = nil
		out[i].Y = nil
		if len(cleaned) > 0 {
			taggedIDs = append(taggedIDs, out[i].ID)
			corpus = append(corpus, cleaned)
		}
	}
	metrics.ObserveStage("normalize", start)

	if len(taggedIDs) == 0 {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, ErrNoTaggedRecords
	}
	runLog.Info().Int("tagged", len(taggedIDs)).Msg("Tag cleaning complete")

	// Stage 2: deterministic vocabulary over the tagged corpus.
	start = time.Now()
	vocab, err := tags.BuildVocabulary(corpus)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ObserveStage("vocabulary", start)
	metrics.VocabularySize.Set(float64(vocab.Len()))
	runLog.Info().Int("vocabulary", vocab.Len()).Msg("Vocabulary built")

	// Stage 3: binary presence vectors, unit-normalized. Sparse throughout;
	// dense only at the reducer boundary.
	start = time.Now()
	encoder := vector.NewEncoder(vocab)
	vectors := encoder.EncodeAll(corpus)
	vector.NormalizeAll(vectors)
	matrix := vector.DenseMatrix(vectors)
	metrics.ObserveStage("encode", start)

	// Stage 4: 2D reduction.
	start = time.Now()
	coords, err := p.reducer.Reduce(ctx, matrix, p.cfg.Reduce)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("dimensionality reduction failed: %w", err)
	}
	metrics.ObserveStage("reduce", start)
	runLog.Info().Int("embedded", len(coords)).Msg("Reduction complete")

	// Stage 5: left-join coordinates back onto the full catalog.
	start = time.Now()
	if err := mergeCoordinates(out, taggedIDs, coords); err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ObserveStage("merge", start)

	metrics.PipelineRuns.WithLabelValues("success").Inc()
	metrics.PipelineRecords.WithLabelValues("total").Set(float64(len(out)))
	metrics.PipelineRecords.WithLabelValues("tagged").Set(float64(len(taggedIDs)))
	metrics.PipelineRecords.WithLabelValues("embedded").Set(float64(len(coords)))

	runLog.Info().
		Int("records", len(out)).
		Int("tagged", len(taggedIDs)).
		Msg("Pipeline run complete")

	return &Result{
		Records:        out,
		Total:          len(out),
		Tagged:         len(taggedIDs),
		VocabularySize: vocab.Len(),
	}, nil
}

// checkUniqueIDs rejects catalogs whose identifier column is not unique.
func checkUniqueIDs(records []models.GameRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// joinTags renders a cleaned tag set back into its comma-separated form.
func joinTags(cleaned []string) string {
	return strings.Join(cleaned, ",")
}
