// GameAtlas - Game Catalog Tag Embedding and Visualization
// Copyright 2026 GameAtlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameatlas/gameatlas

// Package api serves the read-only catalog API over the output of the
// embedding pipeline.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gameatlas/gameatlas/internal/config"
	"github.com/gameatlas/gameatlas/internal/models"
)

// Store is the catalog access surface the handlers need. *database.DB
// satisfies it; tests substitute fakes.
type Store interface {
	GetGames(ctx context.Context, limit, offset int) ([]models.GameRecord, error)
	CountGames(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// Handler holds the HTTP handlers for the read API.
type Handler struct {
	store Store
	cfg   *config.APIConfig
}

// NewHandler creates a Handler over the given store.
func NewHandler(store Store, cfg *config.APIConfig) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// gamesRequest carries the validated pagination parameters.
type gamesRequest struct {
	Limit  int `validate:"min=1"`
	Offset int `validate:"min=0"`
}

// Games returns one page of the catalog as a bare JSON array of record
// objects. Missing coordinates and metadata values serialize as null, never
// NaN. An offset at or beyond the table size yields an empty array, which
// signals the end of pagination.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	limit, err := getIntParam(r, "limit", h.cfg.DefaultPageSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	offset, err := getIntParam(r, "offset", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	req := gamesRequest{Limit: limit, Offset: offset}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if req.Limit > h.cfg.MaxPageSize {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			fmt.Sprintf("limit must be between 1 and %d", h.cfg.MaxPageSize), nil)
		return
	}

	records, err := h.store.GetGames(r.Context(), req.Limit, req.Offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to query games", err)
		return
	}

	respondRaw(w, http.StatusOK, records)
}

// GamesCount returns the serving table's row count in the standard
// envelope.
func (h *Handler) GamesCount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	count, err := h.store.CountGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to count games", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]interface{}{"count": count},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady reports whether the catalog store answers queries.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_ERROR",
			"Catalog store is not reachable", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
