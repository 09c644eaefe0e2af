// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row outcomes for IngestRows.
const (
	OutcomeSeen     = "seen"
	OutcomeRetained = "retained"
)

// Persist attempt outcomes for PersistAttempts.
const (
	PersistSuccess = "success"
	PersistFailure = "failure"
	PersistSkipped = "skipped"
)

var (
	// Ingest Metrics
	IngestRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickscope_ingest_rows_total",
			Help: "Rows read from raw sources, by outcome (seen, retained)",
		},
		[]string{"source", "outcome"},
	)

	IngestChunks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickscope_ingest_chunks_total",
			Help: "Chunks read from raw sources",
		},
		[]string{"source"},
	)

	IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clickscope_ingest_duration_seconds",
			Help:    "Wall time to ingest one raw source",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"source"},
	)

	// Persist Metrics
	PersistAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickscope_persist_attempts_total",
			Help: "Persist attempts per backend, by outcome (success, failure, skipped)",
		},
		[]string{"backend", "outcome"},
	)

	PersistCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickscope_persist_cache_hits_total",
			Help: "Artifacts served from an existing file instead of being recomputed",
		},
		[]string{"artifact"},
	)

	// Analytics Metrics
	AggregateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clickscope_aggregate_duration_seconds",
			Help:    "Time to compute (or load) one aggregate",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"aggregate"},
	)

	AggregateRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clickscope_aggregate_rows",
			Help: "Row count of the most recent aggregate result",
		},
		[]string{"aggregate"},
	)

	// Pipeline Metrics
	PipelineStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clickscope_pipeline_step_duration_seconds",
			Help:    "Duration of each pipeline step",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 300, 900},
		},
		[]string{"step", "status"},
	)

	// Dashboard Metrics
	DashboardRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickscope_dashboard_requests_total",
			Help: "Dashboard HTTP requests by route pattern and status code",
		},
		[]string{"route", "status"},
	)

	DashboardRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clickscope_dashboard_request_duration_seconds",
			Help:    "Dashboard request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"route"},
	)
)

// RecordIngestChunk records one chunk: rows read and rows kept after filtering.
func RecordIngestChunk(source string, seen, retained int) {
	IngestChunks.WithLabelValues(source).Inc()
	IngestRows.WithLabelValues(source, OutcomeSeen).Add(float64(seen))
	IngestRows.WithLabelValues(source, OutcomeRetained).Add(float64(retained))
}

// RecordIngestDuration records the total wall time of one source ingest
func RecordIngestDuration(source string, d time.Duration) {
	IngestDuration.WithLabelValues(source).Observe(d.Seconds())
}

// RecordPersistAttempt records one backend attempt
func RecordPersistAttempt(backend, outcome string) {
	PersistAttempts.WithLabelValues(backend, outcome).Inc()
}

// RecordCacheHit records an artifact served from disk
func RecordCacheHit(artifact string) {
	PersistCacheHits.WithLabelValues(artifact).Inc()
}

// RecordAggregate records an aggregate's duration and result size
func RecordAggregate(name string, d time.Duration, rows int) {
	AggregateDuration.WithLabelValues(name).Observe(d.Seconds())
	AggregateRows.WithLabelValues(name).Set(float64(rows))
}

// RecordPipelineStep records a step duration labelled ok or failed
func RecordPipelineStep(step string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	PipelineStepDuration.WithLabelValues(step, status).Observe(d.Seconds())
}

// RecordDashboardRequest records a dashboard request
func RecordDashboardRequest(route string, statusCode int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	DashboardRequests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	DashboardRequestDuration.WithLabelValues(route).Observe(d.Seconds())
}
