// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"time"
)

// SlotPopularityEntry is one row of the slot popularity index: a series'
// percentile rank within its (weekday, hour-bucket) peer group.
type SlotPopularityEntry struct {
	WeekdayIndex int     `json:"weekday_index"`
	HourBucket   string  `json:"hour_bucket"`
	Series       string  `json:"series"`
	SlotPopScore float64 `json:"slot_pop_score"`
	N            int     `json:"n"`
}

// TrendEntry is one row of the trend index. Series without enough history
// have no entry and default to zero momentum after the candidate join.
type TrendEntry struct {
	Series string  `json:"series"`
	TrendZ float64 `json:"trend_z"`
}

// SimilarEntry is one similarity query result.
type SimilarEntry struct {
	Series string  `json:"series"`
	Score  float64 `json:"score"`
}

// Candidate is one scored recommendation row. All component scores stay
// visible so callers can audit why a series ranked where it did.
type Candidate struct {
	Series       string  `json:"series"`
	Score        float64 `json:"score"`
	SlotPopScore float64 `json:"slot_pop_score"`
	ContentSim   float64 `json:"content_sim"`
	TrendZ       float64 `json:"trend_z"`
	Freq         int     `json:"freq"`

	// Rating aggregates are present only when a ratings table was loaded
	// and the series matched it.
	RatingMean   *float64 `json:"rating_mean,omitempty"`
	RatingMedian *float64 `json:"rating_median,omitempty"`
	RatingCount  *int     `json:"rating_count,omitempty"`
}

// Request is a recommendation query.
type Request struct {
	// Target is the broadcast datetime to recommend for; weekday and hour
	// bucket derive from it.
	Target time.Time `json:"target"`

	// SeedSeries optionally anchors the content-similarity signal. Empty
	// means no similarity candidates.
	SeedSeries string `json:"seed_series,omitempty"`

	// TopK is the number of rows to return, bounded by the engine limits.
	TopK int `json:"top_k,omitempty"`

	// Weights overrides the configured signal weights for this query.
	Weights *Weights `json:"weights,omitempty"`

	// RequestID is a caller-supplied identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response is a ranked recommendation table plus query diagnostics.
type Response struct {
	Candidates []Candidate      `json:"candidates"`
	Metadata   ResponseMetadata `json:"metadata"`
}

// ResponseMetadata records how a response was produced.
type ResponseMetadata struct {
	RequestID       string    `json:"request_id"`
	WeekdayIndex    int       `json:"weekday_index"`
	HourBucket      string    `json:"hour_bucket"`
	SeedSeries      string    `json:"seed_series,omitempty"`
	LadderLevel     string    `json:"ladder_level"`
	Weights         Weights   `json:"weights"`
	TotalCandidates int       `json:"total_candidates"`
	LatencyMS       int64     `json:"latency_ms"`
	CacheHit        bool      `json:"cache_hit"`
	DatasetHash     string    `json:"dataset_hash"`
	Timestamp       time.Time `json:"timestamp"`
}

// LearnedWeights is the result of per-query weight re-estimation: the
// normalized weights plus each candidate's fitted score under them.
type LearnedWeights struct {
	Weights Weights   `json:"weights"`
	Fitted  []float64 `json:"fitted"`
}

// LearnedResponse is a recommendation table re-scored under weights
// learned from the query's own candidate signals. DefaultWeights echoes
// the weights the query would have used otherwise, for comparison.
type LearnedResponse struct {
	Weights        Weights          `json:"weights"`
	DefaultWeights Weights          `json:"default_weights"`
	Candidates     []Candidate      `json:"candidates"`
	Metadata       ResponseMetadata `json:"metadata"`
}
