// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/airtime-analytics/airtime/internal/schedule"
)

// Dataset is an immutable snapshot of the loaded schedule and ratings
// tables plus the derived lookups every signal needs. Its content hash keys
// all index memoization, so swapping in a new snapshot invalidates cached
// indices without explicit bookkeeping.
type Dataset struct {
	slots   []schedule.Slot
	ratings []schedule.RatingRecord

	hash           string
	ratingBySeries map[string]schedule.RatingRecord
	freq           map[string]int
	maxDate        time.Time
}

// NewDataset builds a snapshot from the loaded tables. ratings may be nil;
// all consumers degrade to frequency-based values in that case.
func NewDataset(slots []schedule.Slot, ratings []schedule.RatingRecord) *Dataset {
	d := &Dataset{
		slots:          slots,
		ratings:        ratings,
		ratingBySeries: make(map[string]schedule.RatingRecord, len(ratings)),
		freq:           make(map[string]int),
	}

	h := sha256.New()
	for i := range slots {
		s := &slots[i]
		fmt.Fprintf(h, "s|%d|%d|%s|%s|%s\n", s.Date.Unix(), s.WeekdayIndex, s.HourBucket, s.Series, s.ProgramTitle)
		d.freq[s.Series]++
		if s.Date.After(d.maxDate) {
			d.maxDate = s.Date
		}
	}
	for _, r := range ratings {
		fmt.Fprintf(h, "r|%s|%g|%g|%d\n", r.Series, r.RatingMean, r.RatingMedian, r.RatingCount)
		d.ratingBySeries[r.Series] = r
	}
	d.hash = hex.EncodeToString(h.Sum(nil)[:12])

	return d
}

// Hash is the content hash identifying this snapshot.
func (d *Dataset) Hash() string { return d.hash }

// Slots returns the schedule table.
func (d *Dataset) Slots() []schedule.Slot { return d.slots }

// Ratings returns the ratings table, nil when absent.
func (d *Dataset) Ratings() []schedule.RatingRecord { return d.ratings }

// HasRatings reports whether a ratings table was loaded. Its presence flips
// the slot-value semantics for every row, not just matched ones.
func (d *Dataset) HasRatings() bool { return d.ratings != nil }

// Rating returns the aggregate for a series when the ratings table has it.
func (d *Dataset) Rating(series string) (schedule.RatingRecord, bool) {
	r, ok := d.ratingBySeries[series]
	return r, ok
}

// Freq returns the series' occurrence count across the full schedule.
func (d *Dataset) Freq(series string) int { return d.freq[series] }

// SeriesCount returns the number of distinct series in the schedule.
func (d *Dataset) SeriesCount() int { return len(d.freq) }

// MaxDate returns the newest schedule date, zero when no row carried one.
func (d *Dataset) MaxDate() time.Time { return d.maxDate }
