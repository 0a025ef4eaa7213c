// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"math"
	"sort"
	"time"
)

const trendEpsilon = 1e-6

// BuildTrend computes the momentum index: for each series, the difference
// between its 7-point and 30-point moving averages at the latest available
// date, z-scored across all series.
//
// The daily value is the series' mean rating when a ratings table exists
// (series that never match the ratings table get no trend entry), or the raw
// per-day occurrence count in frequency mode. The short MA needs at least 3
// points, the long MA at least 5; series that never reach both windows get
// no entry and default to zero momentum downstream.
func BuildTrend(ds *Dataset) []TrendEntry {
	daily := dailyValues(ds)

	type seriesTrend struct {
		series string
		trend  float64
	}
	var trends []seriesTrend
	for series, points := range daily {
		if t, ok := latestTrend(points); ok {
			trends = append(trends, seriesTrend{series: series, trend: t})
		}
	}
	if len(trends) == 0 {
		return nil
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].series < trends[j].series })

	var sum float64
	for _, t := range trends {
		sum += t.trend
	}
	mean := sum / float64(len(trends))
	var variance float64
	for _, t := range trends {
		variance += (t.trend - mean) * (t.trend - mean)
	}
	std := math.Sqrt(variance / float64(len(trends)))

	entries := make([]TrendEntry, len(trends))
	for i, t := range trends {
		entries[i] = TrendEntry{
			Series: t.series,
			TrendZ: (t.trend - mean) / (std + trendEpsilon),
		}
	}
	return entries
}

// dailyValues builds each series' date-ordered daily value sequence.
func dailyValues(ds *Dataset) map[string][]float64 {
	type dayKey struct {
		series string
		date   time.Time
	}
	counts := make(map[dayKey]int)
	for _, s := range ds.Slots() {
		if s.Date.IsZero() {
			continue
		}
		counts[dayKey{series: s.Series, date: s.Date}]++
	}

	dates := make(map[string][]time.Time)
	for k := range counts {
		dates[k.series] = append(dates[k.series], k.date)
	}

	out := make(map[string][]float64, len(dates))
	for series, days := range dates {
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		values := make([]float64, len(days))
		if ds.HasRatings() {
			r, ok := ds.Rating(series)
			if !ok {
				continue
			}
			for i := range days {
				values[i] = r.RatingMean
			}
		} else {
			for i, d := range days {
				values[i] = float64(counts[dayKey{series: series, date: d}])
			}
		}
		out[series] = values
	}
	return out
}

// latestTrend returns ma7-ma30 at the last index where both windows have
// enough points.
func latestTrend(values []float64) (float64, bool) {
	for i := len(values) - 1; i >= 0; i-- {
		ma7, ok7 := trailingMean(values, i, 7, 3)
		ma30, ok30 := trailingMean(values, i, 30, 5)
		if ok7 && ok30 {
			return ma7 - ma30, true
		}
	}
	return 0, false
}

// trailingMean averages the window of size w ending at index i, requiring at
// least minPoints observations.
func trailingMean(values []float64, i, w, minPoints int) (float64, bool) {
	start := i - w + 1
	if start < 0 {
		start = 0
	}
	n := i - start + 1
	if n < minPoints {
		return 0, false
	}
	var sum float64
	for _, v := range values[start : i+1] {
		sum += v
	}
	return sum / float64(n), true
}
