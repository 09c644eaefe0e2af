// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/clickscope/internal/models"
)

// Activity level bucket upper bounds, right-inclusive. The last level is open.
var (
	levelBounds = []float64{20, 50, 100, 500, 1000, 2000, 3000, 5000, 10000, math.Inf(1)}
	levelLabels = []string{"0-20", "20-50", "50-100", "100-500", "500-1000", "1000-2000", "2000-3000", "3000-5000", "5000-10000", "10000+"}
)

// LevelLabels returns the activity level labels in ascending order.
func LevelLabels() []string {
	out := make([]string, len(levelLabels))
	copy(out, levelLabels)
	return out
}

// WeekdayIndex maps a weekday to calendar order with Monday first.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Cadence counts campaign creations per UTC calendar day and per calendar
// month, both in calendar order.
func Cadence(campaigns []models.Campaign) ([]models.DailyCadence, []models.MonthlyCadence) {
	days := make(map[time.Time]int)
	months := make(map[time.Time]int)
	for i := range campaigns {
		d := dayOf(campaigns[i].CreatedAt)
		days[d]++
		months[time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)]++
	}

	daily := make([]models.DailyCadence, 0, len(days))
	for d, n := range days {
		isoYear, isoWeek := d.ISOWeek()
		daily = append(daily, models.DailyCadence{
			Date:      d,
			Weekday:   d.Weekday().String(),
			ISOYear:   isoYear,
			ISOWeek:   isoWeek,
			Campaigns: n,
		})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	monthly := make([]models.MonthlyCadence, 0, len(months))
	for m, n := range months {
		monthly = append(monthly, models.MonthlyCadence{
			Year:      m.Year(),
			Month:     int(m.Month()),
			MonthName: m.Month().String(),
			YearMonth: m.Format("2006-01"),
			Campaigns: n,
		})
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].YearMonth < monthly[j].YearMonth })

	return daily, monthly
}

type heatKey struct {
	week    int
	weekday int
}

// CadenceHeatmap averages daily campaign counts per ISO week number and
// weekday. Cells are ordered by week, then weekday.
func CadenceHeatmap(daily []models.DailyCadence) []models.CadenceHeatCell {
	sums := make(map[heatKey][]float64)
	for _, d := range daily {
		k := heatKey{week: d.ISOWeek, weekday: WeekdayIndex(d.Date.Weekday())}
		sums[k] = append(sums[k], float64(d.Campaigns))
	}

	out := make([]models.CadenceHeatCell, 0, len(sums))
	for k, vals := range sums {
		out = append(out, models.CadenceHeatCell{
			ISOWeek:       k.week,
			Weekday:       time.Weekday((k.weekday + 1) % 7).String(),
			WeekdayIndex:  k.weekday,
			MeanCampaigns: Mean(vals),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ISOWeek != out[j].ISOWeek {
			return out[i].ISOWeek < out[j].ISOWeek
		}
		return out[i].WeekdayIndex < out[j].WeekdayIndex
	})
	return out
}

// ActivityLevel returns the label of the bucket holding n, or "" when n is
// not positive.
func ActivityLevel(n int) string {
	if n <= 0 {
		return ""
	}
	for i, hi := range levelBounds {
		if float64(n) <= hi {
			return levelLabels[i]
		}
	}
	return levelLabels[len(levelLabels)-1]
}

func levelIndex(label string) int {
	for i, l := range levelLabels {
		if l == label {
			return i
		}
	}
	return len(levelLabels)
}

type levelKey struct {
	weekday int
	level   string
}

// ActivityLevels counts days per weekday and activity level. Only non-empty
// combinations appear, ordered by weekday then level.
func ActivityLevels(daily []models.DailyCadence) []models.ActivityLevelCount {
	counts := make(map[levelKey]int)
	for _, d := range daily {
		level := ActivityLevel(d.Campaigns)
		if level == "" {
			continue
		}
		counts[levelKey{weekday: WeekdayIndex(d.Date.Weekday()), level: level}]++
	}

	out := make([]models.ActivityLevelCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.ActivityLevelCount{
			Weekday:      time.Weekday((k.weekday + 1) % 7).String(),
			WeekdayIndex: k.weekday,
			Level:        k.level,
			Days:         n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeekdayIndex != out[j].WeekdayIndex {
			return out[i].WeekdayIndex < out[j].WeekdayIndex
		}
		return levelIndex(out[i].Level) < levelIndex(out[j].Level)
	})
	return out
}
