// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package reference

import (
	"testing"

	"github.com/tomtom215/clickscope/internal/models"
)

func TestDirectory_BuiltinNames(t *testing.T) {
	t.Parallel()

	d := New(nil)

	tests := []struct {
		id   int8
		want string
	}{
		{0, UnresolvedName},
		{77, "Москва"},
		{78, "Санкт-Петербург"},
		{101, "Забайкальский край"},
		{80, UnresolvedName},  // gap in the code range
		{-5, UnresolvedName},  // never valid
		{120, UnresolvedName}, // beyond the table
	}
	for _, tt := range tests {
		if got := d.Name(tt.id); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDirectory_Coordinates(t *testing.T) {
	t.Parallel()

	d := New(nil)

	lat, lon, ok := d.Coordinates(77)
	if !ok || lat != 55.7558 || lon != 37.6173 {
		t.Errorf("Coordinates(77) = (%v, %v, %v)", lat, lon, ok)
	}

	// 75 has a name but no reference point
	if _, _, ok := d.Coordinates(75); ok {
		t.Error("Coordinates(75) should report no coordinates")
	}
	if _, _, ok := d.Coordinates(0); ok {
		t.Error("unresolved region must not have coordinates")
	}
}

func TestDirectory_IngestedNamesWin(t *testing.T) {
	t.Parallel()

	d := New([]models.Region{
		{ID: 77, Name: "Moscow"},
		{ID: 100, Name: "Custom"},
		{ID: 78, Name: ""},
	})

	if got := d.Name(77); got != "Moscow" {
		t.Errorf("Name(77) = %q, want Moscow", got)
	}
	if _, _, ok := d.Coordinates(77); !ok {
		t.Error("overlay must keep built-in coordinates")
	}
	if got := d.Name(100); got != "Custom" {
		t.Errorf("Name(100) = %q, want Custom", got)
	}
	if got := d.Name(78); got != "Санкт-Петербург" {
		t.Errorf("empty ingested name should not replace built-in, got %q", got)
	}
}

func TestDirectory_AllOrdered(t *testing.T) {
	t.Parallel()

	d := New([]models.Region{{ID: 100, Name: "Custom"}})
	all := d.All()

	if len(all) != d.Len() {
		t.Fatalf("All() len = %d, Len() = %d", len(all), d.Len())
	}
	if len(all) != len(builtinRegions)+1 {
		t.Errorf("All() len = %d, want %d", len(all), len(builtinRegions)+1)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("All() not ordered at %d: %d >= %d", i, all[i-1].ID, all[i].ID)
		}
	}
	if all[0].ID != 0 {
		t.Errorf("first entry = %d, want 0", all[0].ID)
	}
}
