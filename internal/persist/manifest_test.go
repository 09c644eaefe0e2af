// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package persist

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/clickscope/internal/models"
)

func manifestImpls(t *testing.T) map[string]Manifest {
	t.Helper()
	bm, err := OpenBadgerManifest(filepath.Join(t.TempDir(), "manifest"))
	if err != nil {
		t.Fatalf("OpenBadgerManifest() error = %v", err)
	}
	t.Cleanup(func() { _ = bm.Close() })
	return map[string]Manifest{
		"badger":   bm,
		"inmemory": NewInMemoryManifest(),
	}
}

func TestManifest(t *testing.T) {
	for name, m := range manifestImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("returns nil for unknown artifact", func(t *testing.T) {
				rec, err := m.Lookup(ctx, "nope")
				if err != nil {
					t.Fatalf("Lookup() error = %v", err)
				}
				if rec != nil {
					t.Errorf("Lookup() = %+v, want nil", rec)
				}
			})

			t.Run("records and looks up", func(t *testing.T) {
				written := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
				in := models.ArtifactRecord{
					Name: "clicks_per_day", Backend: BackendArrowParquet, Path: "out/clicks_per_day.parquet",
					Rows: 31, RunID: "run-1", WrittenAt: written,
				}
				if err := m.Record(ctx, in); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
				rec, err := m.Lookup(ctx, "clicks_per_day")
				if err != nil || rec == nil {
					t.Fatalf("Lookup() = %v, %v", rec, err)
				}
				if rec.Backend != in.Backend || rec.Rows != 31 || !rec.WrittenAt.Equal(written) {
					t.Errorf("Lookup() = %+v, want %+v", rec, in)
				}
			})

			t.Run("lists in name order", func(t *testing.T) {
				_ = m.Record(ctx, models.ArtifactRecord{Name: "activity_by_hour", Backend: BackendCSVGzip})
				list, err := m.List(ctx)
				if err != nil {
					t.Fatalf("List() error = %v", err)
				}
				if len(list) != 2 || list[0].Name != "activity_by_hour" || list[1].Name != "clicks_per_day" {
					t.Errorf("List() = %+v", list)
				}
			})

			t.Run("rejects empty name", func(t *testing.T) {
				if err := m.Record(ctx, models.ArtifactRecord{}); err == nil {
					t.Error("Record() with empty name should fail")
				}
			})

			t.Run("clears", func(t *testing.T) {
				if err := m.Clear(ctx); err != nil {
					t.Fatalf("Clear() error = %v", err)
				}
				list, _ := m.List(ctx)
				if len(list) != 0 {
					t.Errorf("List() after Clear = %+v", list)
				}
			})
		})
	}
}

func TestBadgerManifest_SurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "manifest")
	ctx := context.Background()

	m, err := OpenBadgerManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Record(ctx, models.ArtifactRecord{Name: "response_analysis", Rows: 7}); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	m2, err := OpenBadgerManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer m2.Close()

	rec, err := m2.Lookup(ctx, "response_analysis")
	if err != nil || rec == nil || rec.Rows != 7 {
		t.Errorf("Lookup() after reopen = %+v, %v", rec, err)
	}
}
