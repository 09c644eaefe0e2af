// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

/*
Package api serves the dashboard of a finished pipeline run over HTTP.

The router is built on Chi (github.com/go-chi/chi/v5) and exposes a single
HTML page plus read-only JSON endpoints over the run's results:

	GET /                           dashboard page (embedded html/template)
	GET /api/v1/panels              six dashboard panels
	GET /api/v1/aggregates          available aggregate names
	GET /api/v1/aggregates/{name}   rows of one aggregate
	GET /api/v1/response-stats      response latency statistics
	GET /api/v1/artifacts           artifact manifest
	GET /api/v1/health              liveness and run identity
	GET /metrics                    Prometheus exposition

Every JSON endpoint answers with the models.APIResponse envelope:

	{"status": "success", "data": ..., "metadata": {"timestamp": ...}}

Middleware order (outermost first): request ID with logging context, real IP,
panic recovery, CORS, then per-group rate limiting, security headers, request
metrics and gzip compression.

The data behind the handlers is immutable once the server starts, so handlers
need no locking.

FindFreePort probes for a listen port starting at the configured one and
OpenBrowser launches the platform browser on a best-effort basis.
*/
package api
