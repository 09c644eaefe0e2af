// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package api

import (
	"net/http"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/models"
)

// Health reports that the dashboard is serving and which run it shows.
// The status is "degraded" when the run produced no joined rows.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if h.results.JoinedRows == 0 {
		status = "degraded"
	}

	h.respondSuccess(w, models.HealthStatus{
		Status:     status,
		Version:    Version,
		RunID:      h.runID,
		Aggregates: len(analytics.Artifacts),
		StartedAt:  h.startTime.UTC(),
	})
}
