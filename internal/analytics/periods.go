// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"sort"
	"time"

	"github.com/tomtom215/clickscope/internal/models"
)

// DailyTotals counts clicks per UTC calendar day. Unmatched clicks count.
func DailyTotals(joined []Joined) []models.PeriodTotal {
	return periodTotals(joined, "2006-01-02", (*Joined).Date)
}

// MonthlyTotals counts clicks per UTC calendar month. Unmatched clicks count.
func MonthlyTotals(joined []Joined) []models.PeriodTotal {
	return periodTotals(joined, "2006-01", (*Joined).Month)
}

func periodTotals(joined []Joined, layout string, key func(*Joined) time.Time) []models.PeriodTotal {
	counts := make(map[time.Time]int)
	for i := range joined {
		counts[key(&joined[i])]++
	}

	out := make([]models.PeriodTotal, 0, len(counts))
	for start, n := range counts {
		out = append(out, models.PeriodTotal{
			Period: start.Format(layout),
			Start:  start,
			Clicks: n,
			Pct:    pct(n, len(joined)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
