// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

// Package schedule loads and normalizes the two tabular inputs of the
// recommendation pipeline: the broadcast schedule and the optional historical
// ratings export.
//
// The upstream extraction scripts emit CSVs with vendor-specific header
// naming, mixed date formats and raw program titles carrying episode markers.
// This package aligns the columns, derives the weekday index and hour bucket
// for each broadcast slot, and reduces program titles to stable series keys
// so the schedule and ratings tables join cleanly.
//
// Ratings are optional throughout: LoadRatingsFile returns (nil, nil) when
// the export is absent or unalignable, and every downstream index documents
// its frequency-based degraded mode.
package schedule
