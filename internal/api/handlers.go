// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package api

import (
	"time"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/persist"
	"github.com/tomtom215/clickscope/internal/report"
)

// Version is reported by the health endpoint. Overridden at link time.
var Version = "dev"

// Handler contains the data behind the dashboard endpoints.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor
//   - handlers_helpers.go: JSON envelope helpers
//   - handlers_dashboard.go: page, panels, aggregates, response stats, artifacts
//   - handlers_health.go: health endpoint
type Handler struct {
	dashboard report.Dashboard
	results   *analytics.Results
	manifest  persist.Manifest
	runID     string
	startTime time.Time
}

// NewHandler creates a handler over one run's results. manifest may be nil,
// in which case the artifacts endpoint returns an empty list.
func NewHandler(dashboard report.Dashboard, results *analytics.Results, manifest persist.Manifest, runID string) *Handler {
	if results == nil {
		results = &analytics.Results{}
	}
	return &Handler{
		dashboard: dashboard,
		results:   results,
		manifest:  manifest,
		runID:     runID,
		startTime: time.Now(),
	}
}
