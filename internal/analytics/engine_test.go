// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/clickscope/internal/persist"
	"github.com/tomtom215/clickscope/internal/reference"
)

func scenarioInputs() Inputs {
	return Inputs{
		Clicks:    scenarioClicks(),
		Campaigns: scenarioCampaigns(),
		Regions:   reference.New(nil),
	}
}

func newPersister(t *testing.T, dir string, reuse bool) *persist.Persister {
	t.Helper()
	p, err := persist.New(persist.Options{Dir: dir, ReuseCache: reuse}, []persist.Backend{persist.NewCSVGzipBackend()}, nil)
	if err != nil {
		t.Fatalf("persist.New() error = %v", err)
	}
	return p
}

func TestEngineRun(t *testing.T) {
	for _, workers := range []int{1, 4} {
		e := NewEngine(Options{Workers: workers}, nil)
		res, err := e.Run(context.Background(), scenarioInputs())
		if err != nil {
			t.Fatalf("workers=%d: Run() error = %v", workers, err)
		}

		if res.JoinedRows != 5 || res.UnmatchedRows != 0 {
			t.Errorf("workers=%d: joined/unmatched = %d/%d", workers, res.JoinedRows, res.UnmatchedRows)
		}
		if len(res.Activity) != 3 || res.Activity[0].TotalClicks != 1 {
			t.Errorf("workers=%d: activity = %+v", workers, res.Activity)
		}
		if len(res.Responses) != 3 || res.Responses[0].ResponseSeconds != 600 {
			t.Errorf("workers=%d: responses = %+v", workers, res.Responses)
		}
		if res.ResponseStats.Responded != 3 {
			t.Errorf("workers=%d: stats = %+v", workers, res.ResponseStats)
		}
		if len(res.BestHours) != 3 || len(res.ActivitySummary) != 4 || len(res.CadenceHeatmap) != 1 {
			t.Errorf("workers=%d: derived aggregates best=%d summary=%d heat=%d",
				workers, len(res.BestHours), len(res.ActivitySummary), len(res.CadenceHeatmap))
		}
		if len(res.TopRegions) != 3 {
			t.Errorf("workers=%d: top regions = %+v", workers, res.TopRegions)
		}
		if res.Window != DefaultWindow {
			t.Errorf("workers=%d: window = %v", workers, res.Window)
		}
	}
}

func TestEngineRun_Empty(t *testing.T) {
	res, err := NewEngine(Options{}, nil).Run(context.Background(), Inputs{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Activity) != 0 || len(res.Daily) != 0 || len(res.Responses) != 0 {
		t.Errorf("empty run produced rows: %+v", res)
	}
	if res.ResponseStats.Responded != 0 || res.ResponseStats.TotalCampaigns != 0 {
		t.Errorf("stats = %+v", res.ResponseStats)
	}
}

func TestEngineRun_PersistsAndReuses(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewEngine(Options{Workers: 2}, newPersister(t, dir, true)).Run(ctx, scenarioInputs())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	p := newPersister(t, dir, true)
	for _, name := range Artifacts {
		if _, _, err := p.Load(ctx, name); err != nil {
			t.Errorf("artifact %s not persisted: %v", name, err)
		}
	}

	// Different inputs, same directory: every aggregate is served from cache.
	second, err := NewEngine(Options{Workers: 2}, p).Run(ctx, Inputs{})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if second.ResponseStats != first.ResponseStats {
		t.Errorf("cached stats = %+v, want %+v", second.ResponseStats, first.ResponseStats)
	}
	if len(second.Activity) != len(first.Activity) {
		t.Fatalf("cached activity rows = %d, want %d", len(second.Activity), len(first.Activity))
	}
	got, want := second.Activity[1], first.Activity[1]
	if got.CampaignID != want.CampaignID || got.DurationPct != want.DurationPct ||
		!got.FirstClick.Equal(want.FirstClick) || got.Devices["Samsung"] != want.Devices["Samsung"] {
		t.Errorf("cached activity = %+v, want %+v", got, want)
	}

	rec, err := p.Manifest().Lookup(ctx, ArtifactActivity)
	if err != nil || rec == nil || !rec.CacheHit {
		t.Errorf("manifest record = %+v, %v; want a cache hit", rec, err)
	}
}

func TestEngineRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(Options{Workers: 2}, nil).Run(ctx, scenarioInputs())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestResultsAggregate(t *testing.T) {
	res, err := NewEngine(Options{}, nil).Run(context.Background(), scenarioInputs())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range Artifacts {
		if _, ok := res.Aggregate(name); !ok {
			t.Errorf("Aggregate(%q) not found", name)
		}
	}
	if _, ok := res.Aggregate("nope"); ok {
		t.Error("Aggregate() should reject unknown names")
	}
}
