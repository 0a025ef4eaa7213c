// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package api

import (
	"fmt"
	"time"

	"github.com/airtime-analytics/airtime/internal/recommend"
)

// RecommendPayload is the POST body for recommendation queries.
type RecommendPayload struct {
	// Target is the broadcast datetime, RFC3339 or "2006-01-02 15:04".
	Target string `json:"target" validate:"required"`

	SeedSeries string `json:"seed_series,omitempty"`

	TopK int `json:"top_k,omitempty" validate:"gte=0,lte=1000"`

	Weights *WeightsPayload `json:"weights,omitempty"`
}

// WeightsPayload overrides the configured signal weights.
type WeightsPayload struct {
	Slot  float64 `json:"slot" validate:"gte=0"`
	Sim   float64 `json:"sim" validate:"gte=0"`
	Trend float64 `json:"trend" validate:"gte=0"`
}

// targetLayouts are accepted Target formats, tried in order.
var targetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ToRequest converts the payload into an engine request.
func (p *RecommendPayload) ToRequest(requestID string) (recommend.Request, error) {
	target, err := parseTarget(p.Target)
	if err != nil {
		return recommend.Request{}, err
	}

	req := recommend.Request{
		Target:     target,
		SeedSeries: p.SeedSeries,
		TopK:       p.TopK,
		RequestID:  requestID,
	}
	if p.Weights != nil {
		req.Weights = &recommend.Weights{
			Slot:  p.Weights.Slot,
			Sim:   p.Weights.Sim,
			Trend: p.Weights.Trend,
		}
	}
	return req, nil
}

func parseTarget(s string) (time.Time, error) {
	for _, layout := range targetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized target datetime %q", s)
}
