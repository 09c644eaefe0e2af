// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"math"
	"testing"
)

func oneToTen() []float64 {
	return []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"p90 of ten values", oneToTen(), 90, 9.1},
		{"p95 of ten values", oneToTen(), 95, 9.55},
		{"p50 of ten values", oneToTen(), 50, 5.5},
		{"p0 is the minimum", oneToTen(), 0, 1},
		{"p100 is the maximum", oneToTen(), 100, 10},
		{"exact rank", []float64{10, 20, 30, 40, 50}, 75, 40},
		{"empty", nil, 90, 0},
		{"single value", []float64{42}, 95, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(tt.sorted, tt.p); !approx(got, tt.want) {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestMedianAndMean(t *testing.T) {
	if got := Median(oneToTen()); got != 5.5 {
		t.Errorf("Median(1..10) = %v, want 5.5", got)
	}
	if got := Median([]float64{1, 3, 8}); got != 3 {
		t.Errorf("Median(odd) = %v, want 3", got)
	}
	if got := Mean(oneToTen()); got != 5.5 {
		t.Errorf("Mean(1..10) = %v, want 5.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"sample deviation", []float64{2, 4, 4, 4, 5, 5, 7, 9}, math.Sqrt(32.0 / 7.0)},
		{"constant values", []float64{3, 3, 3}, 0},
		{"single value", []float64{5}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StdDev(tt.values); !approx(got, tt.want) {
				t.Errorf("StdDev(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{4.16, 4.2},
		{0.25, 0.2},
		{0.35, 0.4},
		{100.04, 100},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); !approx(got, tt.want) {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTopN(t *testing.T) {
	type row struct {
		name  string
		value float64
	}
	rows := []row{{"a", 1}, {"b", 3}, {"c", 2}, {"d", 3}, {"e", 2}}
	metric := func(r row) float64 { return r.value }

	top := TopN(rows, 4, metric)
	want := []string{"b", "d", "c", "e"}
	if len(top) != len(want) {
		t.Fatalf("TopN() = %+v", top)
	}
	for i, name := range want {
		if top[i].name != name {
			t.Errorf("position %d = %s, want %s (ties keep input order)", i, top[i].name, name)
		}
	}
	if rows[0].name != "a" || rows[1].name != "b" {
		t.Error("TopN modified its input")
	}

	if got := TopN(rows, 0, metric); got != nil {
		t.Errorf("TopN(n=0) = %+v, want nil", got)
	}
	if got := TopN(rows, 10, metric); len(got) != len(rows) {
		t.Errorf("TopN(n>len) returned %d rows", len(got))
	}
	if got := TopN([]row(nil), 3, metric); got != nil {
		t.Errorf("TopN(nil) = %+v, want nil", got)
	}
}
