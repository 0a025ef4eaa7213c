// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

// Package models defines the shared API data structures: the response
// envelope and the schedule shapes served over HTTP. Keeping them here
// avoids import cycles between the api and domain packages.
package models
