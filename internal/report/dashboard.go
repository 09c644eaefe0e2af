// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/models"
)

// Panel kinds.
const (
	PanelBar        = "bar"
	PanelLine       = "line"
	PanelStackedBar = "stacked_bar"
	PanelHeatmap    = "heatmap"
)

// Panel identifiers, in dashboard order.
const (
	PanelTopActivity    = "top_activity"
	PanelDailyClicks    = "daily_clicks"
	PanelMonthlyClicks  = "monthly_clicks"
	PanelWeekdayLevels  = "weekday_levels"
	PanelMonthlyCreated = "monthly_campaigns"
	PanelCadenceHeatmap = "cadence_heatmap"
)

// Point is one labelled value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a named sequence of points. Heatmap panels use one series per row.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Panel is one dashboard chart. Empty panels render as "no data".
type Panel struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Kind   string   `json:"kind"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Series []Series `json:"series"`
	Max    float64  `json:"max"`
	Empty  bool     `json:"empty"`
}

// Dashboard is the full panel set of one run.
type Dashboard struct {
	GeneratedAt   time.Time            `json:"generated_at"`
	RunID         string               `json:"run_id,omitempty"`
	Panels        []Panel              `json:"panels"`
	ResponseStats models.ResponseStats `json:"response_stats"`
	BestHours     []models.BestHour    `json:"best_hours"`
}

// Panel returns the panel with id.
func (d *Dashboard) Panel(id string) (Panel, bool) {
	for _, p := range d.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

var weekdayShort = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// BuildDashboard lays out the six dashboard panels from res.
func BuildDashboard(res *analytics.Results, topN int, runID string) Dashboard {
	if topN < 1 {
		topN = analytics.DefaultTopN
	}
	return Dashboard{
		GeneratedAt: time.Now().UTC(),
		RunID:       runID,
		Panels: []Panel{
			topActivityPanel(res.Activity, topN),
			periodPanel(PanelDailyClicks, "Clicks per day", PanelLine, "Date", res.Daily),
			periodPanel(PanelMonthlyClicks, "Clicks per month", PanelBar, "Month", res.Monthly),
			weekdayLevelsPanel(res.ActivityLevels),
			monthlyCreatedPanel(res.CadenceMonthly),
			heatmapPanel(res.CadenceHeatmap),
		},
		ResponseStats: res.ResponseStats,
		BestHours:     res.BestHours,
	}
}

func finish(p Panel) Panel {
	p.Empty = true
	for _, s := range p.Series {
		for _, pt := range s.Points {
			p.Empty = false
			if pt.Value > p.Max {
				p.Max = pt.Value
			}
		}
	}
	return p
}

func topActivityPanel(activity []models.CampaignActivity, n int) Panel {
	top := analytics.TopN(activity, n, func(a models.CampaignActivity) float64 { return float64(a.TotalClicks) })
	s := Series{Name: "Clicks", Points: make([]Point, 0, len(top))}
	for _, a := range top {
		s.Points = append(s.Points, Point{Label: strconv.Itoa(int(a.CampaignID)), Value: float64(a.TotalClicks)})
	}
	return finish(Panel{
		ID:     PanelTopActivity,
		Title:  "Top " + strconv.Itoa(n) + " campaigns by clicks in the first hours",
		Kind:   PanelBar,
		XLabel: "Campaign",
		YLabel: "Clicks",
		Series: []Series{s},
	})
}

func periodPanel(id, title, kind, xLabel string, totals []models.PeriodTotal) Panel {
	s := Series{Name: "Clicks", Points: make([]Point, 0, len(totals))}
	for _, t := range totals {
		s.Points = append(s.Points, Point{Label: t.Period, Value: float64(t.Clicks)})
	}
	return finish(Panel{ID: id, Title: title, Kind: kind, XLabel: xLabel, YLabel: "Clicks", Series: []Series{s}})
}

// weekdayLevelsPanel stacks one series per activity level over the weekdays.
func weekdayLevelsPanel(levels []models.ActivityLevelCount) Panel {
	days := make(map[string][7]int)
	for _, l := range levels {
		if l.WeekdayIndex < 0 || l.WeekdayIndex > 6 {
			continue
		}
		row := days[l.Level]
		row[l.WeekdayIndex] += l.Days
		days[l.Level] = row
	}

	var series []Series
	for _, label := range analytics.LevelLabels() {
		row, ok := days[label]
		if !ok {
			continue
		}
		s := Series{Name: label, Points: make([]Point, 7)}
		for i := range row {
			s.Points[i] = Point{Label: weekdayShort[i], Value: float64(row[i])}
		}
		series = append(series, s)
	}
	return finish(Panel{
		ID:     PanelWeekdayLevels,
		Title:  "Campaign creation days by weekday and activity level",
		Kind:   PanelStackedBar,
		XLabel: "Weekday",
		YLabel: "Days",
		Series: series,
	})
}

// monthlyCreatedPanel sums campaign creation per calendar month across years.
func monthlyCreatedPanel(monthly []models.MonthlyCadence) Panel {
	var sums [13]int
	var seen [13]bool
	for _, m := range monthly {
		if m.Month < 1 || m.Month > 12 {
			continue
		}
		sums[m.Month] += m.Campaigns
		seen[m.Month] = true
	}

	s := Series{Name: "Campaigns"}
	for month := 1; month <= 12; month++ {
		if seen[month] {
			s.Points = append(s.Points, Point{Label: time.Month(month).String()[:3], Value: float64(sums[month])})
		}
	}
	return finish(Panel{
		ID:     PanelMonthlyCreated,
		Title:  "Campaigns created per month",
		Kind:   PanelBar,
		XLabel: "Month",
		YLabel: "Campaigns",
		Series: []Series{s},
	})
}

// heatmapPanel has one row per ISO week, latest week first, and a column per
// weekday. Missing weekdays are 0.
func heatmapPanel(cells []models.CadenceHeatCell) Panel {
	rows := make(map[int][7]float64)
	for _, c := range cells {
		if c.WeekdayIndex < 0 || c.WeekdayIndex > 6 {
			continue
		}
		row := rows[c.ISOWeek]
		row[c.WeekdayIndex] = c.MeanCampaigns
		rows[c.ISOWeek] = row
	}

	weeks := make([]int, 0, len(rows))
	for w := range rows {
		weeks = append(weeks, w)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(weeks)))

	series := make([]Series, 0, len(weeks))
	for _, w := range weeks {
		row := rows[w]
		s := Series{Name: strconv.Itoa(w), Points: make([]Point, 7)}
		for i := range row {
			s.Points[i] = Point{Label: weekdayShort[i], Value: row[i]}
		}
		series = append(series, s)
	}
	return finish(Panel{
		ID:     PanelCadenceHeatmap,
		Title:  "Campaign creation by week and weekday",
		Kind:   PanelHeatmap,
		XLabel: "Weekday",
		YLabel: "Week",
		Series: series,
	})
}
