// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/persist"
	"github.com/tomtom215/clickscope/internal/reference"
	"github.com/tomtom215/clickscope/internal/report"
)

func testResults(t *testing.T) *analytics.Results {
	t.Helper()
	t0 := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	in := analytics.Inputs{
		Campaigns: []models.Campaign{
			{ID: 1, Name: "spring", CreatedAt: t0},
			{ID: 2, Name: "summer", CreatedAt: t0.Add(time.Hour)},
		},
		Clicks: []models.Click{
			{UID: "a", CampaignID: 1, Region: 77, Device: "Android", ClickTime: t0.Add(10 * time.Minute)},
			{UID: "b", CampaignID: 1, Region: 50, Device: "iPhone", ClickTime: t0.Add(40 * time.Minute)},
			{UID: "c", CampaignID: 2, Region: 0, Device: "Android", ClickTime: t0.Add(2 * time.Hour)},
		},
		Regions: reference.New(nil),
	}
	res, err := analytics.NewEngine(analytics.Options{}, nil).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("engine Run() error = %v", err)
	}
	return res
}

func testServer(t *testing.T, manifest persist.Manifest) http.Handler {
	t.Helper()
	res := testResults(t)
	h := NewHandler(report.BuildDashboard(res, 10, "run-test"), res, manifest, "run-test")
	return NewRouter(h, nil).SetupChi()
}

func get(t *testing.T, srv http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestHealth(t *testing.T) {
	rec := get(t, testServer(t, nil), "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Status != models.StatusSuccess || env.Metadata.RunID != "run-test" || env.Metadata.Timestamp.IsZero() {
		t.Errorf("envelope = %+v", env)
	}
	var health models.HealthStatus
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" || health.Aggregates != len(analytics.Artifacts) {
		t.Errorf("health = %+v", health)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestHealth_DegradedWithoutRows(t *testing.T) {
	h := NewHandler(report.BuildDashboard(&analytics.Results{}, 10, ""), nil, nil, "")
	rec := get(t, NewRouter(h, nil).SetupChi(), "/api/v1/health")
	var health models.HealthStatus
	if err := json.Unmarshal(decode(t, rec).Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "degraded" {
		t.Errorf("status = %q, want degraded", health.Status)
	}
}

func TestPanels(t *testing.T) {
	srv := testServer(t, nil)

	env := decode(t, get(t, srv, "/api/v1/panels"))
	var panels []report.Panel
	if err := json.Unmarshal(env.Data, &panels); err != nil {
		t.Fatal(err)
	}
	if len(panels) != 6 || env.Metadata.Rows != 6 {
		t.Errorf("panels = %d rows = %d", len(panels), env.Metadata.Rows)
	}

	rec := get(t, srv, "/api/v1/panels/"+report.PanelDailyClicks)
	if rec.Code != http.StatusOK {
		t.Fatalf("panel status = %d", rec.Code)
	}
	var p report.Panel
	if err := json.Unmarshal(decode(t, rec).Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != report.PanelDailyClicks || p.Empty {
		t.Errorf("panel = %+v", p)
	}

	if rec := get(t, srv, "/api/v1/panels/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown panel status = %d", rec.Code)
	}
}

func TestAggregate(t *testing.T) {
	srv := testServer(t, nil)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantRows int
	}{
		{"daily", "/api/v1/aggregates/" + analytics.ArtifactDaily, http.StatusOK, 1},
		{"hourly", "/api/v1/aggregates/" + analytics.ArtifactHourly, http.StatusOK, 2},
		{"activity", "/api/v1/aggregates/" + analytics.ArtifactActivity, http.StatusOK, 2},
		{"unknown", "/api/v1/aggregates/nope", http.StatusNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, tt.path)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			env := decode(t, rec)
			if tt.wantCode != http.StatusOK {
				if env.Status != models.StatusError || env.Error == nil || env.Error.Code != "NOT_FOUND" {
					t.Errorf("error envelope = %+v", env)
				}
				return
			}
			if env.Metadata.Rows != tt.wantRows {
				t.Errorf("rows = %d, want %d", env.Metadata.Rows, tt.wantRows)
			}
		})
	}
}

func TestAggregateNames(t *testing.T) {
	env := decode(t, get(t, testServer(t, nil), "/api/v1/aggregates"))
	var names []string
	if err := json.Unmarshal(env.Data, &names); err != nil {
		t.Fatal(err)
	}
	if len(names) != len(analytics.Artifacts) {
		t.Errorf("names = %v", names)
	}
}

func TestResponseStats(t *testing.T) {
	env := decode(t, get(t, testServer(t, nil), "/api/v1/response-stats"))
	var doc map[string]any
	if err := json.Unmarshal(env.Data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["total_campaigns"] != float64(2) || doc["median_response"] == "" {
		t.Errorf("response stats = %v", doc)
	}
}

type fakeManifest struct {
	records []models.ArtifactRecord
	err     error
}

func (f *fakeManifest) Record(context.Context, models.ArtifactRecord) error { return nil }
func (f *fakeManifest) Lookup(context.Context, string) (*models.ArtifactRecord, error) {
	return nil, nil
}
func (f *fakeManifest) List(context.Context) ([]models.ArtifactRecord, error) {
	return f.records, f.err
}
func (f *fakeManifest) Clear(context.Context) error { return nil }
func (f *fakeManifest) Close() error { return nil }

func TestArtifacts(t *testing.T) {
	t.Run("nil manifest", func(t *testing.T) {
		env := decode(t, get(t, testServer(t, nil), "/api/v1/artifacts"))
		if string(env.Data) != "[]" {
			t.Errorf("data = %s, want []", env.Data)
		}
	})

	t.Run("records", func(t *testing.T) {
		m := &fakeManifest{records: []models.ArtifactRecord{{Name: analytics.ArtifactDaily, Backend: persist.BackendCSVGzip, Rows: 3}}}
		env := decode(t, get(t, testServer(t, m), "/api/v1/artifacts"))
		var recs []models.ArtifactRecord
		if err := json.Unmarshal(env.Data, &recs); err != nil {
			t.Fatal(err)
		}
		if len(recs) != 1 || recs[0].Backend != persist.BackendCSVGzip {
			t.Errorf("records = %+v", recs)
		}
	})

	t.Run("manifest error", func(t *testing.T) {
		rec := get(t, testServer(t, &fakeManifest{err: errors.New("closed")}), "/api/v1/artifacts")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestIndex(t *testing.T) {
	rec := get(t, testServer(t, nil), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{`id="` + report.PanelTopActivity + `"`, `id="` + report.PanelCadenceHeatmap + `"`, "run-test", "Response latency"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndex_EmptyPanelsShowNoData(t *testing.T) {
	h := NewHandler(report.BuildDashboard(&analytics.Results{}, 10, ""), nil, nil, "")
	rec := get(t, NewRouter(h, nil).SetupChi(), "/")
	if got := strings.Count(rec.Body.String(), "no data"); got != 8 {
		t.Errorf("no data markers = %d, want 8", got)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	srv := testServer(t, nil)

	if rec := get(t, srv, "/api/v1/nothing"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/panels", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t, nil)
	get(t, srv, "/api/v1/health")

	rec := get(t, srv, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "clickscope_dashboard_requests_total") {
		t.Error("dashboard request counter not exposed")
	}
}

func TestETag(t *testing.T) {
	srv := testServer(t, nil)
	a := get(t, srv, "/api/v1/aggregates/"+analytics.ArtifactDaily).Header().Get("ETag")
	if a == "" || !strings.HasPrefix(a, `"`) {
		t.Errorf("ETag = %q", a)
	}
}
