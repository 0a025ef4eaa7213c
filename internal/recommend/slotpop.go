// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"sort"
)

// LadderLevel identifies which fallback level produced a slot candidate set.
type LadderLevel string

const (
	// LevelExact is the exact (weekday, hour-bucket) match.
	LevelExact LadderLevel = "exact"
	// LevelNeighborBucket is the same weekday with an adjacent bucket.
	LevelNeighborBucket LadderLevel = "neighbor_bucket"
	// LevelSameWeekday is the same weekday across all buckets.
	LevelSameWeekday LadderLevel = "same_weekday"
	// LevelSameBucket is the same bucket across all weekdays.
	LevelSameBucket LadderLevel = "same_bucket"
	// LevelGlobal is the whole index, the guaranteed final level.
	LevelGlobal LadderLevel = "global"
)

// bucketNeighbors is the fixed adjacency table for the neighbor-bucket
// fallback level. The catch-all bucket has no neighbors.
var bucketNeighbors = map[string][]string{
	"08-10": {"10-12"},
	"10-12": {"08-10", "12-14"},
	"12-14": {"10-12", "14-17"},
	"14-17": {"12-14", "17-19"},
	"17-19": {"14-17", "19-21"},
	"19-21": {"17-19", "20-22"},
	"20-22": {"19-21"},
}

type slotGroupKey struct {
	weekday int
	bucket  string
}

// SlotIndex holds the slot popularity entries with lookups for the fallback
// ladder. Entries are ordered by (weekday, bucket, series) for deterministic
// candidate sets.
type SlotIndex struct {
	entries   []SlotPopularityEntry
	byExact   map[slotGroupKey][]int
	byWeekday map[int][]int
	byBucket  map[string][]int
}

// BuildSlotPopularity computes the slot popularity index over a trailing
// window of lookbackDays ending at the newest schedule date.
//
// Each in-window slot is assigned a value: its series' rating mean when a
// ratings table exists (0 for unmatched series), or a flat 1 in pure
// frequency mode. Per-(weekday, bucket, series) mean values are then
// percentile-ranked within their (weekday, bucket) partition, ties receiving
// the averaged rank, so scores land in (0, 1].
func BuildSlotPopularity(ds *Dataset, lookbackDays int) *SlotIndex {
	maxDate := ds.MaxDate()
	cutoff := maxDate.AddDate(0, 0, -lookbackDays)

	type agg struct {
		sum float64
		n   int
	}
	type entryKey struct {
		weekday int
		bucket  string
		series  string
	}
	groups := make(map[entryKey]*agg)

	for _, s := range ds.Slots() {
		if s.Date.IsZero() || s.Date.Before(cutoff) || s.WeekdayIndex < 0 {
			continue
		}
		value := 1.0
		if ds.HasRatings() {
			value = 0.0
			if r, ok := ds.Rating(s.Series); ok {
				value = r.RatingMean
			}
		}
		k := entryKey{weekday: s.WeekdayIndex, bucket: s.HourBucket, series: s.Series}
		a := groups[k]
		if a == nil {
			a = &agg{}
			groups[k] = a
		}
		a.sum += value
		a.n++
	}

	entries := make([]SlotPopularityEntry, 0, len(groups))
	for k, a := range groups {
		entries = append(entries, SlotPopularityEntry{
			WeekdayIndex: k.weekday,
			HourBucket:   k.bucket,
			Series:       k.series,
			SlotPopScore: a.sum / float64(a.n), // holds avg value until ranked below
			N:            a.n,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.WeekdayIndex != b.WeekdayIndex {
			return a.WeekdayIndex < b.WeekdayIndex
		}
		if a.HourBucket != b.HourBucket {
			return a.HourBucket < b.HourBucket
		}
		return a.Series < b.Series
	})

	idx := &SlotIndex{
		entries:   entries,
		byExact:   make(map[slotGroupKey][]int),
		byWeekday: make(map[int][]int),
		byBucket:  make(map[string][]int),
	}
	for i, e := range entries {
		gk := slotGroupKey{weekday: e.WeekdayIndex, bucket: e.HourBucket}
		idx.byExact[gk] = append(idx.byExact[gk], i)
		idx.byWeekday[e.WeekdayIndex] = append(idx.byWeekday[e.WeekdayIndex], i)
		idx.byBucket[e.HourBucket] = append(idx.byBucket[e.HourBucket], i)
	}

	for _, members := range idx.byExact {
		rankPercentile(entries, members)
	}
	return idx
}

// rankPercentile replaces the average values of one (weekday, bucket)
// partition with their percentile ranks, averaging tied ranks.
func rankPercentile(entries []SlotPopularityEntry, members []int) {
	n := len(members)
	ordered := append([]int(nil), members...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return entries[ordered[i]].SlotPopScore < entries[ordered[j]].SlotPopScore
	})

	for start := 0; start < n; {
		end := start + 1
		for end < n && entries[ordered[end]].SlotPopScore == entries[ordered[start]].SlotPopScore {
			end++
		}
		// Ranks are 1-based; tied values share the mean of their ranks.
		avgRank := float64(start+1+end) / 2
		score := avgRank / float64(n)
		for i := start; i < end; i++ {
			entries[ordered[i]].SlotPopScore = score
		}
		start = end
	}
}

// Entries returns the full index ordered by (weekday, bucket, series).
func (idx *SlotIndex) Entries() []SlotPopularityEntry {
	return idx.entries
}

// Candidates resolves the fallback ladder for a (weekday, bucket) query,
// returning the first non-empty level. Lower-priority levels are never
// consulted once a level yields rows, and the global level guarantees a
// non-empty result whenever the index has any entries.
func (idx *SlotIndex) Candidates(weekday int, bucket string) ([]SlotPopularityEntry, LadderLevel) {
	if rows := idx.collect(idx.byExact[slotGroupKey{weekday: weekday, bucket: bucket}]); len(rows) > 0 {
		return rows, LevelExact
	}
	for _, nb := range bucketNeighbors[bucket] {
		if rows := idx.collect(idx.byExact[slotGroupKey{weekday: weekday, bucket: nb}]); len(rows) > 0 {
			return rows, LevelNeighborBucket
		}
	}
	if rows := idx.collect(idx.byWeekday[weekday]); len(rows) > 0 {
		return rows, LevelSameWeekday
	}
	if rows := idx.collect(idx.byBucket[bucket]); len(rows) > 0 {
		return rows, LevelSameBucket
	}
	return append([]SlotPopularityEntry(nil), idx.entries...), LevelGlobal
}

func (idx *SlotIndex) collect(members []int) []SlotPopularityEntry {
	if len(members) == 0 {
		return nil
	}
	rows := make([]SlotPopularityEntry, 0, len(members))
	for _, i := range members {
		rows = append(rows, idx.entries[i])
	}
	return rows
}
