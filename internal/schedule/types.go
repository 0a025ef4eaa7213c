// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock broadcast start time.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalJSON renders the time as an "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// Slot is one row of the broadcast schedule table. Slots are created once at
// load time and are immutable afterward.
type Slot struct {
	// Date is the broadcast calendar date. Zero when the source row carried
	// no parsable date; such rows are kept but excluded from windowed
	// aggregations.
	Date time.Time `json:"date"`

	// WeekdayIndex is 0=Monday .. 6=Sunday, or -1 when Date is unknown.
	WeekdayIndex int `json:"weekday_index"`

	// StartTime is the broadcast start time, nil when unparsable.
	StartTime *TimeOfDay `json:"start_time,omitempty"`

	// HourBucket is one of the fixed slot buckets, "other" when the start
	// time is unknown or outside every bucket.
	HourBucket string `json:"hour_bucket"`

	// ProgramTitle is the raw program title from the source.
	ProgramTitle string `json:"program_title"`

	// Series is the normalized title identifying the show across episodes.
	// Always a deterministic, idempotent normalization of ProgramTitle.
	Series string `json:"series"`

	// SourceSheet records provenance when the ingestion collaborator
	// supplies it.
	SourceSheet string `json:"source_sheet,omitempty"`
}

// RatingRecord is one aggregated row of the ratings table, keyed by
// normalized series name.
type RatingRecord struct {
	Series       string  `json:"series"`
	RatingMean   float64 `json:"rating_mean"`
	RatingMedian float64 `json:"rating_median"`
	RatingCount  int     `json:"rating_count"`
}

// WeekdayIndex converts a date to the 0=Monday .. 6=Sunday convention used
// throughout the schedule and ratings tables.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
