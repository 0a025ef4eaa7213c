// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/airtime-analytics/airtime/internal/cache"
	"github.com/airtime-analytics/airtime/internal/schedule"
)

// ErrNoDataset is returned when a query arrives before any schedule
// data has been loaded into the engine.
var ErrNoDataset = errors.New("recommend: no dataset loaded")

// Engine answers slot recommendation queries over the currently loaded
// dataset. Signal indexes are built once per dataset and memoized by
// the dataset content hash, so reloading identical files costs nothing.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	cache  *cache.Cache

	mu      sync.RWMutex
	dataset *Dataset
	indexes *datasetIndexes
}

// datasetIndexes bundles the three signal indexes built from one
// dataset. The hash ties them to the dataset they were built from.
type datasetIndexes struct {
	hash    string
	slot    *SlotIndex
	sim     *SimilarityIndex
	trend   []TrendEntry
	trendBy map[string]float64
}

// NewEngine creates a recommendation engine with no dataset loaded.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  cache.New(cfg.Cache.TTL),
	}, nil
}

// IndexBuildStats reports how long each signal index took to build.
// Reused means the dataset content was unchanged and nothing was built.
type IndexBuildStats struct {
	Reused         bool
	SlotPopularity time.Duration
	Similarity     time.Duration
	Trend          time.Duration
}

// SetDataset swaps in a new dataset and rebuilds the signal indexes.
// When the incoming dataset hashes identically to the current one the
// existing indexes and cached responses are kept.
func (e *Engine) SetDataset(ds *Dataset) IndexBuildStats {
	if ds == nil {
		return IndexBuildStats{Reused: true}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.indexes != nil && e.indexes.hash == ds.Hash() {
		e.dataset = ds
		e.logger.Debug().Str("dataset_hash", ds.Hash()).Msg("dataset unchanged, indexes reused")
		return IndexBuildStats{Reused: true}
	}

	start := time.Now()
	idx := &datasetIndexes{hash: ds.Hash()}
	var stats IndexBuildStats

	t := time.Now()
	idx.slot = BuildSlotPopularity(ds, e.config.LookbackDays)
	stats.SlotPopularity = time.Since(t)

	t = time.Now()
	idx.sim = BuildSimilarityIndex(ds.Slots(), e.config.MaxFeatures)
	stats.Similarity = time.Since(t)

	t = time.Now()
	idx.trend = BuildTrend(ds)
	idx.trendBy = make(map[string]float64, len(idx.trend))
	for _, tr := range idx.trend {
		idx.trendBy[tr.Series] = tr.TrendZ
	}
	stats.Trend = time.Since(t)

	e.dataset = ds
	e.indexes = idx
	e.cache.Clear()

	e.logger.Info().
		Str("dataset_hash", ds.Hash()).
		Int("slots", len(ds.Slots())).
		Int("series", ds.SeriesCount()).
		Bool("has_ratings", ds.HasRatings()).
		Int("slot_entries", len(idx.slot.Entries())).
		Int("trend_entries", len(idx.trend)).
		Dur("build_time", time.Since(start)).
		Msg("dataset indexed")

	return stats
}

// Dataset returns the currently loaded dataset, or nil.
func (e *Engine) Dataset() *Dataset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dataset
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// CacheStats reports response cache counters.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.GetStats()
}

// Catalog lists every known series with its appearance count.
func (e *Engine) Catalog() []CatalogEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.indexes == nil {
		return nil
	}
	return e.indexes.sim.Catalog()
}

// Recommend scores candidate series for the requested broadcast slot.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	req = e.prepareRequest(req)
	logger := e.requestLogger(req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	ds, idx := e.dataset, e.indexes
	e.mu.RUnlock()
	if ds == nil || idx == nil {
		return nil, ErrNoDataset
	}

	weights := e.effectiveWeights(req)
	key := e.cacheKey("recommend", ds, req, weights)
	if resp := e.checkCache(key, start, logger); resp != nil {
		return resp, nil
	}

	cands, meta := e.buildCandidates(idx, ds, req)
	scoreCandidates(cands, weights)
	rankCandidates(cands)

	meta.RequestID = req.RequestID
	meta.Weights = weights
	meta.TotalCandidates = len(cands)
	meta.DatasetHash = ds.Hash()
	meta.LatencyMS = time.Since(start).Milliseconds()
	meta.Timestamp = time.Now()

	resp := &Response{Candidates: truncate(cands, req.TopK), Metadata: meta}
	e.storeCache(key, resp)

	logger.Debug().
		Str("ladder_level", meta.LadderLevel).
		Int("candidates", meta.TotalCandidates).
		Int("returned", len(resp.Candidates)).
		Int64("latency_ms", meta.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// Similar returns the series most similar to seed by catalog text.
// An unknown seed yields an empty result, not an error.
func (e *Engine) Similar(ctx context.Context, seed string, topK int) ([]SimilarEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	idx := e.indexes
	e.mu.RUnlock()
	if idx == nil {
		return nil, ErrNoDataset
	}

	if topK <= 0 {
		topK = e.config.Limits.DefaultK
	}
	if topK > e.config.Limits.MaxK {
		topK = e.config.Limits.MaxK
	}
	return idx.sim.Similar(schedule.NormalizeSeries(seed), topK), nil
}

// LearnWeightsFor rebuilds the candidate table for the request, learns
// blend weights from it, and returns the table re-scored under them.
func (e *Engine) LearnWeightsFor(ctx context.Context, req Request) (*LearnedResponse, error) {
	start := time.Now()
	req = e.prepareRequest(req)
	logger := e.requestLogger(req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	ds, idx := e.dataset, e.indexes
	e.mu.RUnlock()
	if ds == nil || idx == nil {
		return nil, ErrNoDataset
	}

	cands, meta := e.buildCandidates(idx, ds, req)

	defaults := e.effectiveWeights(req)
	weights := defaults
	if learned, ok := LearnWeights(cands); ok {
		weights = learned.Weights
	}
	scoreCandidates(cands, weights)
	rankCandidates(cands)

	meta.RequestID = req.RequestID
	meta.Weights = weights
	meta.TotalCandidates = len(cands)
	meta.DatasetHash = ds.Hash()
	meta.LatencyMS = time.Since(start).Milliseconds()
	meta.Timestamp = time.Now()

	logger.Debug().
		Float64("w_slot", weights.Slot).
		Float64("w_sim", weights.Sim).
		Float64("w_trend", weights.Trend).
		Int("candidates", meta.TotalCandidates).
		Msg("weights learned")

	return &LearnedResponse{
		Weights:        weights,
		DefaultWeights: defaults,
		Candidates:     truncate(cands, req.TopK),
		Metadata:       meta,
	}, nil
}

// buildCandidates assembles the raw signal table for one query: slot
// popularity rows from the fallback ladder, outer-joined with content
// similarity and trend, then enriched with frequency and ratings.
func (e *Engine) buildCandidates(idx *datasetIndexes, ds *Dataset, req Request) ([]Candidate, ResponseMetadata) {
	weekday := schedule.WeekdayIndex(req.Target)
	bucket := schedule.HourBucket(req.Target.Hour())

	slotEntries, level := idx.slot.Candidates(weekday, bucket)
	cands := make([]Candidate, 0, len(slotEntries))
	rowsBySeries := make(map[string][]int, len(slotEntries))
	for _, se := range slotEntries {
		rowsBySeries[se.Series] = append(rowsBySeries[se.Series], len(cands))
		cands = append(cands, Candidate{Series: se.Series, SlotPopScore: se.SlotPopScore})
	}

	// Similarity rows join on series; unseen series extend the table.
	seed := schedule.NormalizeSeries(req.SeedSeries)
	if seed != "" {
		for _, sim := range idx.sim.Similar(seed, e.config.SimilarityTopK) {
			rows, ok := rowsBySeries[sim.Series]
			if !ok {
				rowsBySeries[sim.Series] = []int{len(cands)}
				cands = append(cands, Candidate{Series: sim.Series, ContentSim: sim.Score})
				continue
			}
			for _, r := range rows {
				cands[r].ContentSim = sim.Score
			}
		}
	}

	// Trend joins the same way so momentum-only series still surface.
	for _, tr := range idx.trend {
		rows, ok := rowsBySeries[tr.Series]
		if !ok {
			rowsBySeries[tr.Series] = []int{len(cands)}
			cands = append(cands, Candidate{Series: tr.Series, TrendZ: tr.TrendZ})
			continue
		}
		for _, r := range rows {
			cands[r].TrendZ = tr.TrendZ
		}
	}

	for i := range cands {
		cands[i].Freq = ds.Freq(cands[i].Series)
		if r, ok := ds.Rating(cands[i].Series); ok {
			mean, median, count := r.RatingMean, r.RatingMedian, r.RatingCount
			cands[i].RatingMean = &mean
			cands[i].RatingMedian = &median
			cands[i].RatingCount = &count
		}
	}

	meta := ResponseMetadata{
		WeekdayIndex: weekday,
		HourBucket:   bucket,
		SeedSeries:   seed,
		LadderLevel:  string(level),
	}
	return cands, meta
}

// scoreCandidates applies the weighted blend in place.
func scoreCandidates(cands []Candidate, w Weights) {
	for i := range cands {
		cands[i].Score = w.Slot*cands[i].SlotPopScore + w.Sim*cands[i].ContentSim + w.Trend*cands[i].TrendZ
	}
}

// rankCandidates orders by score descending with series name as the
// deterministic tiebreak.
func rankCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Series < cands[j].Series
	})
}

func truncate(cands []Candidate, k int) []Candidate {
	if len(cands) > k {
		cands = cands[:k]
	}
	return cands
}

// prepareRequest applies defaults and generates a request ID if needed.
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.TopK <= 0 {
		req.TopK = e.config.Limits.DefaultK
	}
	if req.TopK > e.config.Limits.MaxK {
		req.TopK = e.config.Limits.MaxK
	}
	return req
}

func (e *Engine) requestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Time("target", req.Target).
		Str("seed_series", req.SeedSeries).
		Logger()
}

// effectiveWeights resolves per-request weight overrides against the
// configured defaults, always normalized.
func (e *Engine) effectiveWeights(req Request) Weights {
	if req.Weights != nil {
		return req.Weights.Normalize()
	}
	return e.config.Weights.Normalize()
}

func (e *Engine) cacheKey(prefix string, ds *Dataset, req Request, w Weights) string {
	return cache.GenerateKey(prefix, ds.Hash(), req.Target.Unix(), req.SeedSeries, req.TopK, w)
}

// checkCache returns a copy of a cached response with fresh latency
// and cache-hit metadata, or nil on miss.
func (e *Engine) checkCache(key string, start time.Time, logger zerolog.Logger) *Response {
	if !e.config.Cache.Enabled {
		return nil
	}
	v, ok := e.cache.Get(key)
	if !ok {
		return nil
	}
	cached, ok := v.(*Response)
	if !ok {
		return nil
	}

	resp := *cached
	resp.Candidates = make([]Candidate, len(cached.Candidates))
	copy(resp.Candidates, cached.Candidates)
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return &resp
}

func (e *Engine) storeCache(key string, resp *Response) {
	if e.config.Cache.Enabled {
		e.cache.Set(key, resp)
	}
}
