// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

/*
Package api provides the HTTP surface of the recommendation service
using the Chi router.

Endpoints:

	GET  /api/v1/health             Service and dataset status
	GET  /api/v1/schedule           Filterable, paginated slot listing
	GET  /api/v1/schedule/summary   Dataset summary
	GET  /api/v1/catalog            Known series with occurrence counts
	GET  /api/v1/similar            Content-similar series for a seed
	POST /api/v1/recommend          Ranked recommendations for a slot
	POST /api/v1/recommend/weights  Per-query learned weights
	POST /api/v1/data/reload        Reload CSV inputs from disk
	GET  /metrics                   Prometheus metrics

All /api/v1 responses share the models.APIResponse envelope.
*/
package api
