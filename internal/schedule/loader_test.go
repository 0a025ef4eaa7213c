// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package schedule

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadScheduleEnglishHeaders(t *testing.T) {
	csvData := "date,start_time,program_title,source_sheet\n" +
		"2024-03-04,19:30,戲說台灣#12,week1\n" +
		"2024-03-05,08:05:00,晨間新聞,week1\n" +
		",21:00,深夜劇場,week1\n" +
		"2024-03-06,,無時間節目,week1\n" +
		"2024-03-07,19:00,,week1\n"

	slots, err := LoadSchedule(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("LoadSchedule() error = %v", err)
	}
	// The empty-title row is dropped.
	if len(slots) != 4 {
		t.Fatalf("got %d slots, want 4", len(slots))
	}

	first := slots[0]
	if first.Series != "戲說台灣" {
		t.Errorf("Series = %q, want 戲說台灣", first.Series)
	}
	if first.WeekdayIndex != 0 {
		t.Errorf("WeekdayIndex = %d, want 0 (Monday)", first.WeekdayIndex)
	}
	if first.HourBucket != "19-21" {
		t.Errorf("HourBucket = %q, want 19-21", first.HourBucket)
	}
	if first.StartTime == nil || first.StartTime.Hour != 19 || first.StartTime.Minute != 30 {
		t.Errorf("StartTime = %v, want 19:30", first.StartTime)
	}

	if slots[1].HourBucket != "08-10" {
		t.Errorf("seconds bucket = %q, want 08-10", slots[1].HourBucket)
	}

	// Missing date keeps the row with unknown weekday.
	noDate := slots[2]
	if !noDate.Date.IsZero() || noDate.WeekdayIndex != -1 {
		t.Errorf("dateless row: Date=%v WeekdayIndex=%d, want zero/-1", noDate.Date, noDate.WeekdayIndex)
	}
	if noDate.HourBucket != "20-22" {
		t.Errorf("dateless row bucket = %q, want 20-22", noDate.HourBucket)
	}

	// Missing time lands in the catch-all bucket.
	noTime := slots[3]
	if noTime.StartTime != nil || noTime.HourBucket != BucketOther {
		t.Errorf("timeless row: StartTime=%v bucket=%q, want nil/other", noTime.StartTime, noTime.HourBucket)
	}
}

func TestLoadScheduleVendorAliases(t *testing.T) {
	csvData := "日期,播出時間,節目名稱,時段\n" +
		"2024/3/4,19:30,風水世家第88集,19-21\n"

	slots, err := LoadSchedule(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("LoadSchedule() error = %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	slot := slots[0]
	if slot.Series != "風水世家" {
		t.Errorf("Series = %q, want 風水世家", slot.Series)
	}
	if slot.Date != time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Date = %v, want 2024-03-04", slot.Date)
	}
	if slot.HourBucket != "19-21" {
		t.Errorf("HourBucket = %q, want 19-21 (from column)", slot.HourBucket)
	}
}

func TestLoadScheduleHeaderCaseInsensitive(t *testing.T) {
	csvData := "Date,Start_Time,Program_Title\n2024-03-04,10:00,測試節目\n"
	slots, err := LoadSchedule(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("LoadSchedule() error = %v", err)
	}
	if len(slots) != 1 || slots[0].Series != "測試節目" {
		t.Fatalf("slots = %+v, want one 測試節目 row", slots)
	}
}

func TestLoadRatingsEpisodeShape(t *testing.T) {
	csvData := "series,rating\n" +
		"戲說台灣#1,1.2\n" +
		"戲說台灣#2,1.4\n" +
		"戲說台灣#3,1.0\n" +
		"晨間新聞,0.8\n" +
		"壞資料,not-a-number\n"

	records, err := LoadRatings(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("LoadRatings() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Sorted by series; 戲說台灣 episodes collapse to one record.
	var drama *RatingRecord
	for i := range records {
		if records[i].Series == "戲說台灣" {
			drama = &records[i]
		}
	}
	if drama == nil {
		t.Fatal("no aggregated record for 戲說台灣")
	}
	if drama.RatingCount != 3 {
		t.Errorf("RatingCount = %d, want 3", drama.RatingCount)
	}
	if math.Abs(drama.RatingMean-1.2) > 1e-9 {
		t.Errorf("RatingMean = %f, want 1.2", drama.RatingMean)
	}
	if math.Abs(drama.RatingMedian-1.2) > 1e-9 {
		t.Errorf("RatingMedian = %f, want 1.2", drama.RatingMedian)
	}
}

func TestLoadRatingsAggregatedShape(t *testing.T) {
	csvData := "series,rating_mean,rating_median,rating_count\n" +
		"戲說台灣,1.2,1.1,88\n"

	records, err := LoadRatings(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("LoadRatings() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Series != "戲說台灣" || r.RatingMean != 1.2 || r.RatingMedian != 1.1 || r.RatingCount != 88 {
		t.Errorf("record = %+v", r)
	}
}

func TestLoadRatingsUnalignable(t *testing.T) {
	records, err := LoadRatings(strings.NewReader("foo,bar\n1,2\n"))
	if err != nil {
		t.Fatalf("LoadRatings() error = %v", err)
	}
	if records != nil {
		t.Errorf("records = %v, want nil for unalignable table", records)
	}
}

func TestLoadRatingsFileMissing(t *testing.T) {
	records, err := LoadRatingsFile(filepath.Join(t.TempDir(), "absent.csv"))
	if err != nil {
		t.Fatalf("LoadRatingsFile() error = %v, want nil for missing file", err)
	}
	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input string
		want  *TimeOfDay
	}{
		{"19:30", &TimeOfDay{Hour: 19, Minute: 30}},
		{"08:05:00", &TimeOfDay{Hour: 8, Minute: 5}},
		{"9:5", &TimeOfDay{Hour: 9, Minute: 5}},
		{"25:00", nil},
		{"19:75", nil},
		{"", nil},
		{"noon", nil},
	}
	for _, tt := range tests {
		got := ParseTimeOfDay(tt.input)
		switch {
		case got == nil && tt.want == nil:
		case got == nil || tt.want == nil:
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
		case got.Hour != tt.want.Hour || got.Minute != tt.want.Minute:
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMedianEvenCount(t *testing.T) {
	got := median([]float64{1, 2, 3, 4})
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("median = %f, want 2.5", got)
	}
}
