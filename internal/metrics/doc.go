// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

/*
Package metrics provides Prometheus metrics collection and export.

The package instruments:
  - API request latency and throughput
  - Recommendation query volume, latency, and fallback ladder usage
  - Response cache efficiency
  - Dataset size and reload outcomes
  - Signal index build times

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8460/metrics

All recording functions are safe for concurrent use; synchronization is
handled by the Prometheus client library.
*/
package metrics
