// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package config

import (
	"fmt"
	"time"

	"github.com/airtime-analytics/airtime/internal/recommend"
)

// Config is the root application configuration.
type Config struct {
	Data    DataConfig    `koanf:"data"`
	Server  ServerConfig  `koanf:"server"`
	API     APIConfig     `koanf:"api"`
	Engine  EngineConfig  `koanf:"engine"`
	Logging LoggingConfig `koanf:"logging"`
}

// DataConfig locates the CSV inputs. RatingsPath is optional; without
// it the engine runs in frequency mode.
type DataConfig struct {
	SchedulePath string `koanf:"schedule_path"`
	RatingsPath  string `koanf:"ratings_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig holds request handling settings.
type APIConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// EngineConfig mirrors the recommendation engine settings in flat,
// file-friendly form. ToEngine converts it for the recommend package.
type EngineConfig struct {
	WeightSlot     float64       `koanf:"weight_slot"`
	WeightSim      float64       `koanf:"weight_sim"`
	WeightTrend    float64       `koanf:"weight_trend"`
	LookbackDays   int           `koanf:"lookback_days"`
	SimilarityTopK int           `koanf:"similarity_top_k"`
	MaxFeatures    int           `koanf:"max_features"`
	DefaultK       int           `koanf:"default_k"`
	MaxK           int           `koanf:"max_k"`
	CacheEnabled   bool          `koanf:"cache_enabled"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ToEngine builds a recommend.Config from the flat settings.
func (e EngineConfig) ToEngine() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.Weights{
			Slot:  e.WeightSlot,
			Sim:   e.WeightSim,
			Trend: e.WeightTrend,
		},
		LookbackDays:   e.LookbackDays,
		SimilarityTopK: e.SimilarityTopK,
		MaxFeatures:    e.MaxFeatures,
		Limits: recommend.LimitsConfig{
			DefaultK: e.DefaultK,
			MaxK:     e.MaxK,
		},
		Cache: recommend.CacheConfig{
			Enabled: e.CacheEnabled,
			TTL:     e.CacheTTL,
		},
	}
}

// Validate checks the configuration for values that would fail at
// runtime. Engine-level invariants are checked by recommend.Config.
func (c *Config) Validate() error {
	if c.Data.SchedulePath == "" {
		return fmt.Errorf("data.schedule_path is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.API.RateLimitReqs < 0 {
		return fmt.Errorf("api.rate_limit_reqs must be non-negative")
	}
	if c.API.RateLimitReqs > 0 && c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive when rate limiting is enabled")
	}
	if err := c.Engine.ToEngine().Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
