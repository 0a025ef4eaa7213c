// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"fmt"
	"math"
	"testing"

	"github.com/airtime-analytics/airtime/internal/schedule"
)

// dailySlots emits count slots of the series on each of days consecutive
// dates starting 2024-03-04.
func dailySlots(series string, days int, countForDay func(day int) int) []schedule.Slot {
	var slots []schedule.Slot
	for day := 0; day < days; day++ {
		date := fmt.Sprintf("2024-03-%02d", 4+day)
		for c := 0; c < countForDay(day); c++ {
			slots = append(slots, mkSlot(date, 19, series))
		}
	}
	return slots
}

func TestBuildTrendFrequencyMode(t *testing.T) {
	// 升勢 airs more often recently; 平勢 is flat. Momentum must rank
	// the rising series above the flat one.
	slots := append(
		dailySlots("升勢", 10, func(day int) int { return 1 + day/2 }),
		dailySlots("平勢", 10, func(day int) int { return 2 })...,
	)
	entries := BuildTrend(NewDataset(slots, nil))
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	z := make(map[string]float64)
	for _, e := range entries {
		z[e.Series] = e.TrendZ
	}
	if z["升勢"] <= z["平勢"] {
		t.Errorf("rising series z=%f not above flat series z=%f", z["升勢"], z["平勢"])
	}

	// With two series the population z-scores are symmetric around zero.
	if math.Abs(z["升勢"]+z["平勢"]) > 1e-6 {
		t.Errorf("z-scores not centered: %f + %f", z["升勢"], z["平勢"])
	}
}

func TestBuildTrendNeedsHistory(t *testing.T) {
	// Four distinct dates cannot satisfy the 5-point long window.
	slots := dailySlots("短命劇", 4, func(int) int { return 1 })
	if entries := BuildTrend(NewDataset(slots, nil)); entries != nil {
		t.Errorf("entries = %v, want nil for short history", entries)
	}

	slots = dailySlots("長壽劇", 5, func(int) int { return 1 })
	if entries := BuildTrend(NewDataset(slots, nil)); len(entries) != 1 {
		t.Errorf("got %d entries, want 1 at exactly 5 days", len(entries))
	}
}

func TestBuildTrendRatingsModeSkipsUnmatched(t *testing.T) {
	slots := append(
		dailySlots("有評劇", 10, func(int) int { return 1 }),
		dailySlots("無評劇", 10, func(int) int { return 1 })...,
	)
	ratings := []schedule.RatingRecord{mkRating("有評劇", 1.5)}

	entries := BuildTrend(NewDataset(slots, ratings))
	for _, e := range entries {
		if e.Series == "無評劇" {
			t.Error("series absent from ratings table got a trend entry in ratings mode")
		}
	}
}

func TestTrailingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// Window of 7 ending at index 9 covers indexes 3..9.
	got, ok := trailingMean(values, 9, 7, 3)
	if !ok || math.Abs(got-7.0) > 1e-9 {
		t.Errorf("trailingMean(9,7,3) = %f,%v, want 7,true", got, ok)
	}

	// Too few points for the minimum.
	if _, ok := trailingMean(values, 1, 7, 3); ok {
		t.Error("trailingMean with 2 points passed a min of 3")
	}

	// Short prefix window still averages what exists.
	got, ok = trailingMean(values, 2, 7, 3)
	if !ok || math.Abs(got-2.0) > 1e-9 {
		t.Errorf("trailingMean(2,7,3) = %f,%v, want 2,true", got, ok)
	}
}
