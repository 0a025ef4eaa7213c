// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/airtime-analytics/airtime/internal/models"
	"github.com/airtime-analytics/airtime/internal/schedule"
)

// ScheduleSummary handles GET /api/v1/schedule/summary
func (h *Handler) ScheduleSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ds := h.engine.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNoDataset, "No dataset loaded", nil)
		return
	}

	respondSuccess(w, h.summarize(ds), time.Since(start), false)
}

// Schedule handles GET /api/v1/schedule
// Filters: series, weekday (0-6), bucket, from/to (2006-01-02), q (title
// substring); paging: offset, limit.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ds := h.engine.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeNoDataset, "No dataset loaded", nil)
		return
	}

	q := r.URL.Query()
	seriesFilter := schedule.NormalizeSeries(q.Get("series"))
	weekday := getIntParam(r, "weekday", -1)
	bucket := q.Get("bucket")
	if bucket != "" && !schedule.ValidBucket(bucket) {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Unknown hour bucket", nil)
		return
	}
	titleQuery := q.Get("q")

	from, err := getDateParam(r, "from")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid from date, want YYYY-MM-DD", nil)
		return
	}
	to, err := getDateParam(r, "to")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid to date, want YYYY-MM-DD", nil)
		return
	}

	offset := getIntParam(r, "offset", 0)
	limit := getIntParam(r, "limit", 100)
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	var matched []models.ScheduleSlot
	for _, slot := range ds.Slots() {
		if seriesFilter != "" && slot.Series != seriesFilter {
			continue
		}
		if weekday >= 0 && slot.WeekdayIndex != weekday {
			continue
		}
		if bucket != "" && slot.HourBucket != bucket {
			continue
		}
		if titleQuery != "" && !strings.Contains(slot.ProgramTitle, titleQuery) {
			continue
		}
		// Date-range filters skip undated rows.
		if !from.IsZero() && (slot.Date.IsZero() || slot.Date.Before(from)) {
			continue
		}
		if !to.IsZero() && (slot.Date.IsZero() || slot.Date.After(to)) {
			continue
		}
		matched = append(matched, toAPISlot(slot))
	}

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	respondSuccess(w, &models.SchedulePage{
		Slots:  matched[offset:end],
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, time.Since(start), false)
}

// toAPISlot converts a schedule slot into its API shape.
func toAPISlot(slot schedule.Slot) models.ScheduleSlot {
	out := models.ScheduleSlot{
		WeekdayIndex: slot.WeekdayIndex,
		HourBucket:   slot.HourBucket,
		ProgramTitle: slot.ProgramTitle,
		Series:       slot.Series,
		SourceSheet:  slot.SourceSheet,
	}
	if !slot.Date.IsZero() {
		d := slot.Date
		out.Date = &d
	}
	if slot.StartTime != nil {
		out.StartTime = slot.StartTime.String()
	}
	return out
}

// getDateParam parses a YYYY-MM-DD query parameter. Absent parameters
// return the zero time without error.
func getDateParam(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

// getIntParam returns a query parameter as int, or def when absent or
// malformed.
func getIntParam(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
