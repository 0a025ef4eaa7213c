// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"fmt"
	"time"
)

// Weights defines the relative contribution of the three signals. Weights
// are normalized at scoring time, so they don't need to sum to 1.0.
type Weights struct {
	// Slot is the weight for the slot popularity percentile.
	Slot float64 `json:"slot" koanf:"slot"`

	// Sim is the weight for content similarity to the seed series.
	Sim float64 `json:"sim" koanf:"sim"`

	// Trend is the weight for z-scored momentum.
	Trend float64 `json:"trend" koanf:"trend"`
}

// Normalize returns a copy with weights scaled to sum to 1.0. All-zero
// weights fall back to an equal third each.
func (w Weights) Normalize() Weights {
	sum := w.Slot + w.Sim + w.Trend
	if sum == 0 {
		return Weights{Slot: 1.0 / 3, Sim: 1.0 / 3, Trend: 1.0 / 3}
	}
	return Weights{Slot: w.Slot / sum, Sim: w.Sim / sum, Trend: w.Trend / sum}
}

// ToMap returns the weights keyed by the candidate column they scale.
func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		"slot_pop_score": w.Slot,
		"content_sim":    w.Sim,
		"trend_z":        w.Trend,
	}
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of rows returned when a request leaves TopK
	// zero. Default: 10.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK caps the requested TopK. Default: 100.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// CacheConfig contains response/index memoization parameters.
type CacheConfig struct {
	// Enabled controls whether responses and indices are memoized.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is the memoization time-to-live. Index entries are keyed by the
	// dataset content hash, so a reload invalidates them implicitly.
	TTL time.Duration `json:"ttl" koanf:"ttl"`
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights is the default signal weighting (0.5 slot / 0.3 sim /
	// 0.2 trend).
	Weights Weights `json:"weights" koanf:"weights"`

	// LookbackDays is the trailing window for slot popularity, measured
	// back from the newest schedule date. Default: 60.
	LookbackDays int `json:"lookback_days" koanf:"lookback_days"`

	// SimilarityTopK is how many similarity candidates feed the scorer.
	// Default: 60.
	SimilarityTopK int `json:"similarity_top_k" koanf:"similarity_top_k"`

	// MaxFeatures caps the TF-IDF vocabulary. Default: 8000.
	MaxFeatures int `json:"max_features" koanf:"max_features"`

	Limits LimitsConfig `json:"limits" koanf:"limits"`
	Cache  CacheConfig  `json:"cache" koanf:"cache"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights:        Weights{Slot: 0.5, Sim: 0.3, Trend: 0.2},
		LookbackDays:   60,
		SimilarityTopK: 60,
		MaxFeatures:    8000,
		Limits: LimitsConfig{
			DefaultK: 10,
			MaxK:     100,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Slot < 0 || c.Weights.Sim < 0 || c.Weights.Trend < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}
	if c.LookbackDays < 1 {
		return fmt.Errorf("lookback_days must be positive, got %d", c.LookbackDays)
	}
	if c.SimilarityTopK < 1 {
		return fmt.Errorf("similarity_top_k must be positive, got %d", c.SimilarityTopK)
	}
	if c.MaxFeatures < 1 {
		return fmt.Errorf("max_features must be positive, got %d", c.MaxFeatures)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}
