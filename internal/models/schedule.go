// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package models

import "time"

// ScheduleSummary describes the loaded dataset at a glance.
type ScheduleSummary struct {
	DatasetHash   string         `json:"dataset_hash"`
	Slots         int            `json:"slots"`
	Series        int            `json:"series"`
	HasRatings    bool           `json:"has_ratings"`
	FirstDate     *time.Time     `json:"first_date,omitempty"`
	LastDate      *time.Time     `json:"last_date,omitempty"`
	SlotsByBucket map[string]int `json:"slots_by_bucket"`
	SlotsByYear   map[int]int    `json:"slots_by_year"`
}

// ScheduleSlot is one broadcast slot row as served by the API.
type ScheduleSlot struct {
	Date         *time.Time `json:"date,omitempty"`
	WeekdayIndex int        `json:"weekday_index"`
	StartTime    string     `json:"start_time,omitempty"`
	HourBucket   string     `json:"hour_bucket"`
	ProgramTitle string     `json:"program_title"`
	Series       string     `json:"series"`
	SourceSheet  string     `json:"source_sheet,omitempty"`
}

// SchedulePage is a paginated slice of schedule slots.
type SchedulePage struct {
	Slots  []ScheduleSlot `json:"slots"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}
