// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

// Package recommend implements the program recommendation engine.
//
// The engine combines three independent signals over the loaded schedule and
// ratings tables:
//
//   - slot popularity: percentile rank of a series' average value within its
//     (weekday, hour-bucket) peer group over a trailing window, with a
//     five-level fallback ladder for sparse slots
//   - content similarity: TF-IDF cosine similarity between series titles
//   - trend: z-scored momentum (7-day minus 30-day moving average) of each
//     series' daily value
//
// Scores combine as a weighted sum, and every returned candidate exposes its
// component scores so callers can audit the ranking. An auxiliary operation
// re-estimates the three weights per query by regressing a proxy target on
// the component columns of the current candidate set.
//
// The engine carries no cross-call state beyond the loaded dataset: indices
// are pure functions of the tables and are memoized keyed by the dataset
// content hash.
package recommend
