// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/airtime-analytics/airtime/internal/logging"
	"github.com/airtime-analytics/airtime/internal/metrics"
	"github.com/airtime-analytics/airtime/internal/models"
	"github.com/airtime-analytics/airtime/internal/recommend"
)

const queryTimeout = 10 * time.Second

// Recommend handles POST /api/v1/recommend
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := h.decodeRecommendRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	metrics.RecordRecommendQuery(resp.Metadata.LadderLevel, resp.Metadata.CacheHit,
		resp.Metadata.TotalCandidates, time.Since(start))

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: resp.Metadata.LatencyMS,
			Cached:      resp.Metadata.CacheHit,
		},
	})
}

// RecommendWeights handles POST /api/v1/recommend/weights
func (h *Handler) RecommendWeights(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRecommendRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	resp, err := h.engine.LearnWeightsFor(ctx, req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: resp.Metadata.LatencyMS,
		},
	})
}

// Catalog handles GET /api/v1/catalog
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	entries := h.engine.Catalog()
	if entries == nil {
		if h.engine.Dataset() == nil {
			respondError(w, http.StatusServiceUnavailable, ErrCodeNoDataset, "No dataset loaded", nil)
			return
		}
		entries = []recommend.CatalogEntry{}
	}

	respondSuccess(w, entries, time.Since(start), false)
}

// Similar handles GET /api/v1/similar?series=X&k=N
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	seed := r.URL.Query().Get("series")
	if seed == "" {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "series parameter is required", nil)
		return
	}
	k := getIntParam(r, "k", 0)

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	entries, err := h.engine.Similar(ctx, seed, k)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	if entries == nil {
		entries = []recommend.SimilarEntry{}
	}

	respondSuccess(w, entries, time.Since(start), false)
}

// decodeRecommendRequest parses and validates the shared POST body for
// the recommend endpoints.
func (h *Handler) decodeRecommendRequest(w http.ResponseWriter, r *http.Request) (recommend.Request, bool) {
	var payload RecommendPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", err)
		return recommend.Request{}, false
	}

	if apiErr := validateRequest(&payload); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return recommend.Request{}, false
	}

	req, err := payload.ToRequest(logging.RequestIDFromContext(r.Context()))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return recommend.Request{}, false
	}
	return req, true
}

// respondEngineError maps engine errors to HTTP responses.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNoDataset):
		respondError(w, http.StatusServiceUnavailable, ErrCodeNoDataset, "No dataset loaded", nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, http.StatusGatewayTimeout, ErrCodeInternalError, "Query timed out", err)
	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Recommendation failed", err)
	}
}
