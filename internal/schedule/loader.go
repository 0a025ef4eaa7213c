// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Column candidates recognized per logical field, matched case-insensitively
// in declaration order. Vendors disagree on header naming, so the loader
// aligns headers before anything else touches the table.
var (
	dateCandidates    = []string{"date", "日期", "播出日期", "播映日期"}
	timeCandidates    = []string{"start_time", "time", "開始時間", "播放開始時間", "播出時間"}
	titleCandidates   = []string{"program_title", "program", "節目", "節目名稱"}
	titleFallbacks    = []string{"series", "cleaned_series_name"}
	bucketCandidates  = []string{"hour_bucket", "時段"}
	sheetCandidates   = []string{"source_sheet", "sheet"}
	rSeriesCandidates = []string{"series", "cleaned_series_name", "program_title_clean", "program"}
	rRatingCandidates = []string{"rating", "平均收視率", "收視率"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

var clockPrefixRe = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})`)

// table is a parsed CSV with case-insensitive header lookup.
type table struct {
	header map[string]int
	rows   [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return &table{header: map[string]int{}}, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		if i == 0 {
			name = strings.TrimPrefix(name, "")
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := header[key]; !dup {
			header[key] = i
		}
	}
	return &table{header: header, rows: records[1:]}, nil
}

// column returns the index of the first matching candidate, or -1.
func (t *table) column(candidates []string) int {
	for _, cand := range candidates {
		if idx, ok := t.header[strings.ToLower(cand)]; ok {
			return idx
		}
	}
	return -1
}

func (t *table) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// LoadSchedule parses the broadcast schedule table from CSV. Rows with an
// unparsable date or time keep a zero/nil field rather than failing the load;
// rows without any program title are dropped.
func LoadSchedule(r io.Reader) ([]Slot, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	titleIdx := t.column(titleCandidates)
	if titleIdx < 0 {
		titleIdx = t.column(titleFallbacks)
	}
	dateIdx := t.column(dateCandidates)
	timeIdx := t.column(timeCandidates)
	bucketIdx := t.column(bucketCandidates)
	sheetIdx := t.column(sheetCandidates)

	slots := make([]Slot, 0, len(t.rows))
	for _, row := range t.rows {
		title := t.cell(row, titleIdx)
		if title == "" {
			continue
		}

		slot := Slot{
			WeekdayIndex: -1,
			ProgramTitle: title,
			Series:       DeriveSeries(title),
			SourceSheet:  t.cell(row, sheetIdx),
		}

		if d, ok := parseDate(t.cell(row, dateIdx)); ok {
			slot.Date = d
			slot.WeekdayIndex = WeekdayIndex(d)
		}
		slot.StartTime = ParseTimeOfDay(t.cell(row, timeIdx))

		if b := t.cell(row, bucketIdx); b != "" {
			slot.HourBucket = b
		} else {
			slot.HourBucket = BucketFromTime(slot.StartTime)
		}

		slots = append(slots, slot)
	}
	return slots, nil
}

// LoadScheduleFile loads the schedule table from a CSV file.
func LoadScheduleFile(path string) ([]Slot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()
	return LoadSchedule(f)
}

// LoadRatings parses the ratings table from CSV. Two shapes are accepted:
// per-episode rows (series + rating columns), which are aggregated to
// mean/median/count per normalized series, and pre-aggregated tables carrying
// rating_mean/rating_median/rating_count, which pass through unchanged.
//
// A table whose columns cannot be aligned to either shape yields (nil, nil):
// absent ratings are a valid state and every downstream consumer degrades to
// frequency-based values.
func LoadRatings(r io.Reader) ([]RatingRecord, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	seriesIdx := t.column(rSeriesCandidates)
	if seriesIdx < 0 {
		return nil, nil
	}

	meanIdx := t.column([]string{"rating_mean"})
	medianIdx := t.column([]string{"rating_median"})
	countIdx := t.column([]string{"rating_count"})
	if meanIdx >= 0 && medianIdx >= 0 && countIdx >= 0 {
		return loadAggregated(t, seriesIdx, meanIdx, medianIdx, countIdx), nil
	}

	ratingIdx := t.column(rRatingCandidates)
	if ratingIdx < 0 {
		return nil, nil
	}
	return aggregateEpisodes(t, seriesIdx, ratingIdx), nil
}

// LoadRatingsFile loads the ratings table from a CSV file. A missing file is
// not an error: the pipeline runs in frequency-only mode without ratings.
func LoadRatingsFile(path string) ([]RatingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ratings: %w", err)
	}
	defer f.Close()
	return LoadRatings(f)
}

func loadAggregated(t *table, seriesIdx, meanIdx, medianIdx, countIdx int) []RatingRecord {
	records := make([]RatingRecord, 0, len(t.rows))
	for _, row := range t.rows {
		series := NormalizeSeries(t.cell(row, seriesIdx))
		if series == "" {
			continue
		}
		mean, err1 := strconv.ParseFloat(t.cell(row, meanIdx), 64)
		median, err2 := strconv.ParseFloat(t.cell(row, medianIdx), 64)
		count, err3 := strconv.Atoi(t.cell(row, countIdx))
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		records = append(records, RatingRecord{
			Series:       series,
			RatingMean:   mean,
			RatingMedian: median,
			RatingCount:  count,
		})
	}
	return records
}

func aggregateEpisodes(t *table, seriesIdx, ratingIdx int) []RatingRecord {
	values := make(map[string][]float64)
	for _, row := range t.rows {
		series := NormalizeSeries(t.cell(row, seriesIdx))
		if series == "" {
			continue
		}
		// Unparsable ratings are skipped for that row only; the series still
		// aggregates over its remaining episodes.
		v, err := strconv.ParseFloat(t.cell(row, ratingIdx), 64)
		if err != nil {
			continue
		}
		values[series] = append(values[series], v)
	}

	records := make([]RatingRecord, 0, len(values))
	for series, vs := range values {
		records = append(records, RatingRecord{
			Series:       series,
			RatingMean:   mean(vs),
			RatingMedian: median(vs),
			RatingCount:  len(vs),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Series < records[j].Series })
	return records
}

// ParseTimeOfDay parses an "HH:MM[:SS]" prefixed string. Anything unparsable
// yields nil, never an error; slots without a valid start time land in the
// "other" bucket.
func ParseTimeOfDay(s string) *TimeOfDay {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if m := clockPrefixRe.FindStringSubmatch(s); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if hh >= 0 && hh <= 23 && mm >= 0 && mm <= 59 {
			return &TimeOfDay{Hour: hh, Minute: mm}
		}
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil && (ts.Hour() != 0 || ts.Minute() != 0) {
			return &TimeOfDay{Hour: ts.Hour(), Minute: ts.Minute()}
		}
	}
	return nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func median(vs []float64) float64 {
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
