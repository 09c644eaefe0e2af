// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/report"
)

// Index renders the dashboard page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, newPageData(h.dashboard)); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render dashboard")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write dashboard")
	}
}

// Panels returns every dashboard panel.
func (h *Handler) Panels(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, h.dashboard.Panels)
}

// Panel returns one dashboard panel by id.
func (h *Handler) Panel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.dashboard.Panel(id)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("unknown panel %q", id), nil)
		return
	}
	h.respondSuccess(w, p)
}

// AggregateNames lists the aggregates the run produced.
func (h *Handler) AggregateNames(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, analytics.Artifacts)
}

// Aggregate returns the rows of one aggregate by artifact name.
func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rows, ok := h.results.Aggregate(name)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("unknown aggregate %q", name), nil)
		return
	}
	h.respondSuccess(w, rows)
}

// ResponseStats returns the response latency statistics with readable durations.
func (h *Handler) ResponseStats(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, report.NewResponseStatsDocument(h.results.ResponseStats))
}

// Artifacts returns the artifact manifest.
func (h *Handler) Artifacts(w http.ResponseWriter, r *http.Request) {
	if h.manifest == nil {
		h.respondSuccess(w, []models.ArtifactRecord{})
		return
	}
	records, err := h.manifest.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list artifacts", err)
		return
	}
	if records == nil {
		records = []models.ArtifactRecord{}
	}
	h.respondSuccess(w, records)
}
