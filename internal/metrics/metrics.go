// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Recommendation Metrics
	RecommendQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_queries_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"ladder_level", "cache_hit"},
	)

	RecommendQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_query_duration_seconds",
			Help:    "Recommendation query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Candidate table size per recommendation query",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	IndexBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "index_build_duration_seconds",
			Help:    "Signal index build duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"index"}, // "slot_popularity", "similarity", "trend"
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// Dataset Metrics
	DatasetSlots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_slots",
			Help: "Number of schedule slots in the loaded dataset",
		},
	)

	DatasetSeries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_series",
			Help: "Number of distinct series in the loaded dataset",
		},
	)

	DatasetRatingsPresent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_ratings_present",
			Help: "Whether a ratings table is loaded (0=absent, 1=present)",
		},
	)

	DataReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_reloads_total",
			Help: "Total number of dataset reload attempts",
		},
		[]string{"result"}, // "success", "error", "unchanged"
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendQuery records one recommendation query
func RecordRecommendQuery(ladderLevel string, cacheHit bool, candidates int, duration time.Duration) {
	hit := "false"
	if cacheHit {
		hit = "true"
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
	RecommendQueriesTotal.WithLabelValues(ladderLevel, hit).Inc()
	RecommendQueryDuration.Observe(duration.Seconds())
	RecommendCandidates.Observe(float64(candidates))
}

// RecordIndexBuild records one signal index build
func RecordIndexBuild(index string, duration time.Duration) {
	IndexBuildDuration.WithLabelValues(index).Observe(duration.Seconds())
}

// RecordDatasetLoaded updates dataset gauges after a successful load
func RecordDatasetLoaded(slots, series int, hasRatings bool) {
	DatasetSlots.Set(float64(slots))
	DatasetSeries.Set(float64(series))
	if hasRatings {
		DatasetRatingsPresent.Set(1)
	} else {
		DatasetRatingsPresent.Set(0)
	}
}

// RecordDataReload records a reload attempt outcome
func RecordDataReload(result string) {
	DataReloadsTotal.WithLabelValues(result).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
