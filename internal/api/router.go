// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all routes and middleware onto a chi router.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(h.cfg.API.CORSOrigins))
	r.Use(RequestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(h.cfg.API.RateLimitReqs, h.cfg.API.RateLimitWindow))
		r.Use(PrometheusMetrics)

		r.Get("/health", h.Health)

		r.Get("/schedule", h.Schedule)
		r.Get("/schedule/summary", h.ScheduleSummary)

		r.Get("/catalog", h.Catalog)
		r.Get("/similar", h.Similar)
		r.Post("/recommend", h.Recommend)
		r.Post("/recommend/weights", h.RecommendWeights)

		r.Post("/data/reload", h.DataReload)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
