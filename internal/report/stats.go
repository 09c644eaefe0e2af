// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package report

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/models"
)

// ResponseStatsFile is the response statistics file name inside the reports directory.
const ResponseStatsFile = "response_stats.json"

// ResponseStatsDocument is ResponseStats plus readable latency strings.
type ResponseStatsDocument struct {
	models.ResponseStats

	AvgResponse    string `json:"avg_response"`
	MedianResponse string `json:"median_response"`
	MinResponse    string `json:"min_response"`
	MaxResponse    string `json:"max_response"`
	P90Response    string `json:"percentile_90_response"`
	P95Response    string `json:"percentile_95_response"`
}

// NewResponseStatsDocument formats s for output.
func NewResponseStatsDocument(s models.ResponseStats) ResponseStatsDocument {
	return ResponseStatsDocument{
		ResponseStats:  s,
		AvgResponse:    FormatTimedelta(s.MeanSeconds),
		MedianResponse: FormatTimedelta(s.MedianSeconds),
		MinResponse:    FormatTimedelta(s.MinSeconds),
		MaxResponse:    FormatTimedelta(s.MaxSeconds),
		P90Response:    FormatTimedelta(s.P90Seconds),
		P95Response:    FormatTimedelta(s.P95Seconds),
	}
}

// WriteResponseStats writes s as a one-element JSON array of records.
func WriteResponseStats(ctx context.Context, path string, s models.ResponseStats) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}
	data, err := json.MarshalIndent([]ResponseStatsDocument{NewResponseStatsDocument(s)}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal response stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("write response stats: %w", err)
	}
	logging.Ctx(ctx).Info().Str("path", path).Msg("Response statistics written")
	return nil
}

// FormatTimedelta renders seconds as H:MM:SS with optional microseconds and
// a leading day count, e.g. "0:10:00", "1 day, 2:03:04.500000" or
// "-1 day, 23:59:00" for negative one minute.
func FormatTimedelta(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ""
	}
	const usPerDay = 86400 * 1_000_000

	us := int64(math.RoundToEven(seconds * 1e6))
	days := us / usPerDay
	rem := us % usPerDay
	if rem < 0 {
		days--
		rem += usPerDay
	}

	h := rem / 3_600_000_000
	rem %= 3_600_000_000
	m := rem / 60_000_000
	rem %= 60_000_000
	s := rem / 1_000_000
	frac := rem % 1_000_000

	out := fmt.Sprintf("%d:%02d:%02d", h, m, s)
	if frac != 0 {
		out += fmt.Sprintf(".%06d", frac)
	}
	if days != 0 {
		unit := "days"
		if days == 1 || days == -1 {
			unit = "day"
		}
		out = fmt.Sprintf("%d %s, %s", days, unit, out)
	}
	return out
}
