// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope returned by every dashboard JSON endpoint.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"hour": 9, "clicks": 1200, "unique_users": 800, "pct": 7.4}],
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "rows": 24}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "unknown aggregate \"foo\""},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response bookkeeping.
//
// Fields:
//   - Timestamp: Server time when the response was generated
//   - RunID: Pipeline run that produced the data (omitted for static routes)
//   - Rows: Row count for tabular payloads
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id,omitempty"`
	Rows      int       `json:"rows,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - NOT_FOUND: Unknown aggregate or route
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Encoding or manifest failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status     string    `json:"status"`
	Version    string    `json:"version"`
	RunID      string    `json:"run_id"`
	Aggregates int       `json:"aggregates"`
	StartedAt  time.Time `json:"started_at"`
}

// ArtifactRecord describes one persisted table as stored in the artifact manifest.
type ArtifactRecord struct {
	Name      string    `json:"name"`
	Backend   string    `json:"backend"`
	Path      string    `json:"path"`
	Rows      int       `json:"rows"`
	CacheHit  bool      `json:"cache_hit"`
	RunID     string    `json:"run_id,omitempty"`
	WrittenAt time.Time `json:"written_at"`
}
