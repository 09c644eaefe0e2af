// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

/*
Package metrics provides Prometheus instrumentation for the pipeline and dashboard.

Collectors are registered with the default registry through promauto at package
init, so importing the package is enough to expose them on /metrics.

# Available Metrics

Ingest:
  - clickscope_ingest_rows_total: rows read (counter)
    Labels: source, outcome (seen, retained)
  - clickscope_ingest_chunks_total: chunks read (counter)
    Labels: source
  - clickscope_ingest_duration_seconds: wall time per source (histogram)

Persist:
  - clickscope_persist_attempts_total: backend attempts (counter)
    Labels: backend, outcome (success, failure, skipped)
  - clickscope_persist_cache_hits_total: artifacts reused from disk (counter)
    Labels: artifact

Analytics:
  - clickscope_aggregate_duration_seconds: compute time (histogram)
  - clickscope_aggregate_rows: size of the latest result (gauge)
    Labels: aggregate

Pipeline:
  - clickscope_pipeline_step_duration_seconds (histogram)
    Labels: step, status (ok, failed)

Dashboard:
  - clickscope_dashboard_requests_total (counter)
    Labels: route, status
  - clickscope_dashboard_request_duration_seconds (histogram)
    Labels: route

# Usage

	start := time.Now()
	rows, err := compute()
	metrics.RecordAggregate("activity_by_hour", time.Since(start), len(rows))

# Thread Safety

All collectors and Record helpers are safe for concurrent use.
*/
package metrics
