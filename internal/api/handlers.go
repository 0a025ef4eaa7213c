// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/airtime-analytics/airtime/internal/config"
	"github.com/airtime-analytics/airtime/internal/logging"
	"github.com/airtime-analytics/airtime/internal/metrics"
	"github.com/airtime-analytics/airtime/internal/models"
	"github.com/airtime-analytics/airtime/internal/recommend"
	"github.com/airtime-analytics/airtime/internal/schedule"
)

// Handler serves the HTTP API over one recommendation engine.
type Handler struct {
	cfg    *config.Config
	engine *recommend.Engine

	// reloadMu serializes dataset reloads; queries keep running against
	// the previous dataset until the swap.
	reloadMu sync.Mutex
}

// NewHandler creates an API handler around an engine.
func NewHandler(cfg *config.Config, engine *recommend.Engine) *Handler {
	return &Handler{cfg: cfg, engine: engine}
}

// ReloadData loads the CSV inputs from the configured paths and swaps
// the dataset into the engine. Returns the resulting summary.
func (h *Handler) ReloadData() (*models.ScheduleSummary, error) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	start := time.Now()

	slots, err := schedule.LoadScheduleFile(h.cfg.Data.SchedulePath)
	if err != nil {
		metrics.RecordDataReload("error")
		return nil, err
	}

	var ratings []schedule.RatingRecord
	if h.cfg.Data.RatingsPath != "" {
		ratings, err = schedule.LoadRatingsFile(h.cfg.Data.RatingsPath)
		if err != nil {
			metrics.RecordDataReload("error")
			return nil, err
		}
	}

	ds := recommend.NewDataset(slots, ratings)

	result := "success"
	if prev := h.engine.Dataset(); prev != nil && prev.Hash() == ds.Hash() {
		result = "unchanged"
	}
	buildStats := h.engine.SetDataset(ds)
	if !buildStats.Reused {
		metrics.RecordIndexBuild("slot_popularity", buildStats.SlotPopularity)
		metrics.RecordIndexBuild("similarity", buildStats.Similarity)
		metrics.RecordIndexBuild("trend", buildStats.Trend)
	}

	metrics.RecordDataReload(result)
	metrics.RecordDatasetLoaded(len(ds.Slots()), ds.SeriesCount(), ds.HasRatings())

	logging.Info().
		Str("dataset_hash", ds.Hash()).
		Int("slots", len(ds.Slots())).
		Int("series", ds.SeriesCount()).
		Bool("has_ratings", ds.HasRatings()).
		Str("result", result).
		Dur("duration", time.Since(start)).
		Msg("dataset reloaded")

	return h.summarize(ds), nil
}

// summarize builds the dataset summary served by the API.
func (h *Handler) summarize(ds *recommend.Dataset) *models.ScheduleSummary {
	summary := &models.ScheduleSummary{
		DatasetHash:   ds.Hash(),
		Slots:         len(ds.Slots()),
		Series:        ds.SeriesCount(),
		HasRatings:    ds.HasRatings(),
		SlotsByBucket: make(map[string]int),
		SlotsByYear:   make(map[int]int),
	}

	var first, last time.Time
	for _, slot := range ds.Slots() {
		summary.SlotsByBucket[slot.HourBucket]++
		if slot.Date.IsZero() {
			continue
		}
		summary.SlotsByYear[slot.Date.Year()]++
		if first.IsZero() || slot.Date.Before(first) {
			first = slot.Date
		}
		if last.IsZero() || slot.Date.After(last) {
			last = slot.Date
		}
	}
	if !first.IsZero() {
		summary.FirstDate = &first
		summary.LastDate = &last
	}
	return summary
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ds := h.engine.Dataset()
	stats := h.engine.CacheStats()

	data := map[string]interface{}{
		"status":         "ok",
		"dataset_loaded": ds != nil,
		"cache": map[string]interface{}{
			"hits":   stats.Hits,
			"misses": stats.Misses,
			"keys":   stats.Keys,
		},
	}
	if ds != nil {
		data["dataset_hash"] = ds.Hash()
		data["slots"] = len(ds.Slots())
		data["series"] = ds.SeriesCount()
		data["has_ratings"] = ds.HasRatings()
	}

	respondSuccess(w, data, 0, false)
}

// DataReload handles POST /api/v1/data/reload
func (h *Handler) DataReload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	summary, err := h.ReloadData()
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to reload dataset", err)
		return
	}

	respondSuccess(w, summary, time.Since(start), false)
}
