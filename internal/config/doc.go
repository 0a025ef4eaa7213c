// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

// Package config loads application configuration from layered sources:
// built-in defaults, an optional YAML file, and AIRTIME_* environment
// variables, in increasing order of precedence.
package config
