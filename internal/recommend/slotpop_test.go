// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/airtime-analytics/airtime/internal/schedule"
)

// mkSlot builds a schedule slot for the given date and hour the way the
// loader would.
func mkSlot(date string, hour int, title string) schedule.Slot {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return schedule.Slot{
		Date:         d,
		WeekdayIndex: schedule.WeekdayIndex(d),
		StartTime:    &schedule.TimeOfDay{Hour: hour},
		HourBucket:   schedule.HourBucket(hour),
		ProgramTitle: title,
		Series:       schedule.DeriveSeries(title),
	}
}

func mkRating(series string, mean float64) schedule.RatingRecord {
	return schedule.RatingRecord{Series: series, RatingMean: mean, RatingMedian: mean, RatingCount: 10}
}

func TestBuildSlotPopularityFrequencyMode(t *testing.T) {
	// Three series in the same Monday 19-21 partition, no ratings. All
	// slot values are 1, so all ranks tie.
	slots := []schedule.Slot{
		mkSlot("2024-03-04", 19, "甲節目"),
		mkSlot("2024-03-04", 20, "乙節目"),
		mkSlot("2024-03-11", 19, "丙節目"),
	}
	idx := BuildSlotPopularity(NewDataset(slots, nil), 60)

	entries := idx.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Tied values share the averaged rank: (1+2+3)/3 / 3 = 2/3.
	for _, e := range entries {
		if math.Abs(e.SlotPopScore-2.0/3.0) > 1e-9 {
			t.Errorf("%s SlotPopScore = %f, want 2/3", e.Series, e.SlotPopScore)
		}
	}
}

func TestBuildSlotPopularityRatingsMode(t *testing.T) {
	slots := []schedule.Slot{
		mkSlot("2024-03-04", 19, "高分劇"),
		mkSlot("2024-03-04", 20, "低分劇"),
		mkSlot("2024-03-04", 19, "無評劇"),
	}
	ratings := []schedule.RatingRecord{
		mkRating("高分劇", 2.0),
		mkRating("低分劇", 1.0),
	}
	idx := BuildSlotPopularity(NewDataset(slots, ratings), 60)

	scores := make(map[string]float64)
	for _, e := range idx.Entries() {
		scores[e.Series] = e.SlotPopScore
	}

	// Unmatched series value is 0, ranking below both rated series.
	if math.Abs(scores["無評劇"]-1.0/3.0) > 1e-9 {
		t.Errorf("無評劇 = %f, want 1/3", scores["無評劇"])
	}
	if math.Abs(scores["低分劇"]-2.0/3.0) > 1e-9 {
		t.Errorf("低分劇 = %f, want 2/3", scores["低分劇"])
	}
	if math.Abs(scores["高分劇"]-1.0) > 1e-9 {
		t.Errorf("高分劇 = %f, want 1", scores["高分劇"])
	}
}

func TestBuildSlotPopularityWindow(t *testing.T) {
	slots := []schedule.Slot{
		mkSlot("2024-03-04", 19, "新節目"),
		mkSlot("2023-01-02", 19, "舊節目"), // far outside 60 days of max date
	}
	idx := BuildSlotPopularity(NewDataset(slots, nil), 60)

	if len(idx.Entries()) != 1 {
		t.Fatalf("got %d entries, want 1 (stale slot excluded)", len(idx.Entries()))
	}
	if idx.Entries()[0].Series != "新節目" {
		t.Errorf("surviving series = %q, want 新節目", idx.Entries()[0].Series)
	}
}

func TestCandidatesLadder(t *testing.T) {
	// Entries exist only for Monday 19-21.
	slots := []schedule.Slot{
		mkSlot("2024-03-04", 19, "甲節目"),
		mkSlot("2024-03-04", 20, "乙節目"),
	}
	idx := BuildSlotPopularity(NewDataset(slots, nil), 60)

	tests := []struct {
		name    string
		weekday int
		bucket  string
		want    LadderLevel
	}{
		{"exact", 0, "19-21", LevelExact},
		{"neighbor bucket", 0, "20-22", LevelNeighborBucket},
		{"same weekday", 0, "08-10", LevelSameWeekday},
		{"same bucket", 3, "19-21", LevelSameBucket},
		{"global", 3, "08-10", LevelGlobal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, level := idx.Candidates(tt.weekday, tt.bucket)
			if level != tt.want {
				t.Fatalf("level = %q, want %q", level, tt.want)
			}
			if len(rows) == 0 {
				t.Fatal("no rows returned")
			}
		})
	}
}

// A query bucket whose neighbor has entries on a different weekday must
// not short-circuit at the neighbor level.
func TestCandidatesNeighborRequiresSameWeekday(t *testing.T) {
	slots := []schedule.Slot{
		mkSlot("2024-03-05", 19, "週二節目"), // Tuesday 19-21
	}
	idx := BuildSlotPopularity(NewDataset(slots, nil), 60)

	_, level := idx.Candidates(0, "20-22")
	if level != LevelSameBucket && level != LevelGlobal {
		t.Errorf("level = %q, want a cross-weekday fallback", level)
	}
	// 19-21 neighbors 20-22 but only on Tuesday; Monday queries skip it.
	if level == LevelNeighborBucket {
		t.Error("neighbor level matched entries from a different weekday")
	}
}

func TestRankPercentileTies(t *testing.T) {
	entries := []SlotPopularityEntry{
		{Series: "a", SlotPopScore: 1.0},
		{Series: "b", SlotPopScore: 2.0},
		{Series: "c", SlotPopScore: 2.0},
		{Series: "d", SlotPopScore: 3.0},
	}
	rankPercentile(entries, []int{0, 1, 2, 3})

	want := map[string]float64{
		"a": 1.0 / 4.0,
		"b": 2.5 / 4.0, // ranks 2 and 3 averaged
		"c": 2.5 / 4.0,
		"d": 4.0 / 4.0,
	}
	for _, e := range entries {
		if math.Abs(e.SlotPopScore-want[e.Series]) > 1e-9 {
			t.Errorf("%s = %f, want %f", e.Series, e.SlotPopScore, want[e.Series])
		}
	}
}
