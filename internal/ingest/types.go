// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package ingest

import (
	"time"
)

// Stats holds statistics about one source ingest.
type Stats struct {
	// Source is the source name (clicks, campaign, regions).
	Source string

	// RowsSeen counts every data row read, before filtering.
	RowsSeen int64

	// RowsRetained counts rows that passed the filter and were coerced.
	RowsRetained int64

	// Chunks is the number of chunks read.
	Chunks int

	// StartTime is when the ingest started.
	StartTime time.Time

	// EndTime is when the ingest completed (zero if still running).
	EndTime time.Time
}

// Duration returns the duration of the ingest.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RetainedPercent returns the share of seen rows that were kept (0-100).
func (s *Stats) RetainedPercent() float64 {
	if s.RowsSeen == 0 {
		return 0
	}
	return float64(s.RowsRetained) / float64(s.RowsSeen) * 100
}

// RowsPerSecond returns the read rate.
func (s *Stats) RowsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.RowsSeen) / duration
}

// Summary is a serializable view of Stats.
type Summary struct {
	Source          string    `json:"source"`
	Status          string    `json:"status"`
	RowsSeen        int64     `json:"rows_seen"`
	RowsRetained    int64     `json:"rows_retained"`
	RetainedPercent float64   `json:"retained_percent"`
	Chunks          int       `json:"chunks"`
	RowsPerSec      float64   `json:"rows_per_second"`
	ElapsedSeconds  float64   `json:"elapsed_seconds"`
	StartTime       time.Time `json:"start_time"`
}

// ToSummary converts Stats to a Summary with calculated fields.
func (s *Stats) ToSummary() *Summary {
	status := "completed"
	if s.EndTime.IsZero() {
		status = "running"
	}
	return &Summary{
		Source:          s.Source,
		Status:          status,
		RowsSeen:        s.RowsSeen,
		RowsRetained:    s.RowsRetained,
		RetainedPercent: s.RetainedPercent(),
		Chunks:          s.Chunks,
		RowsPerSec:      s.RowsPerSecond(),
		ElapsedSeconds:  s.Duration().Seconds(),
		StartTime:       s.StartTime,
	}
}
