// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package report renders aggregate results as static artifacts (an Excel
// workbook and a response statistics JSON file), console summaries and the
// dashboard panel model served by the api package.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/models"
)

// WorkbookFile is the workbook name inside the reports directory.
const WorkbookFile = "report.xlsx"

// NoData is written in place of a chart when an aggregate has no rows.
const NoData = "no data"

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"
)

type chartSpec struct {
	kind   excelize.ChartType
	title  string
	catCol int // 1-based
	valCol int
}

type sheetSpec struct {
	name    string
	headers []string
	rows    [][]any
	chart   *chartSpec
}

// WorkbookWriter writes one sheet per aggregate with native charts.
type WorkbookWriter struct {
	topN int
}

// NewWorkbookWriter creates a writer whose top-N sheet holds topN campaigns.
func NewWorkbookWriter(topN int) *WorkbookWriter {
	if topN < 1 {
		topN = analytics.DefaultTopN
	}
	return &WorkbookWriter{topN: topN}
}

// Write renders res to path, creating the parent directory.
func (w *WorkbookWriter) Write(ctx context.Context, path string, res *analytics.Results) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sheets := w.sheets(res)
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("rename sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("path", path).
		Int("sheets", len(sheets)).
		Msg("Workbook written")
	return nil
}

func writeSheet(f *excelize.File, s sheetSpec, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.headers); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", lastHeader, headerStyle); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(s.headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(s.name, "A", lastCol, 18); err != nil {
		return err
	}

	if len(s.rows) == 0 {
		return f.SetCellValue(s.name, "A2", NoData)
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	if s.chart == nil {
		return nil
	}
	anchor, err := excelize.CoordinatesToCellName(len(s.headers)+2, 2)
	if err != nil {
		return err
	}
	return f.AddChart(s.name, anchor, &excelize.Chart{
		Type: s.chart.kind,
		Series: []excelize.ChartSeries{{
			Name:       columnRange(s.name, s.chart.valCol, 1, 1),
			Categories: columnRange(s.name, s.chart.catCol, 2, len(s.rows)+1),
			Values:     columnRange(s.name, s.chart.valCol, 2, len(s.rows)+1),
		}},
		Title:     []excelize.RichTextRun{{Text: s.chart.title}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 720, Height: 360},
	})
}

// columnRange builds an absolute reference like Sheet!$B$2:$B$10.
func columnRange(sheet string, col, from, to int) string {
	name, _ := excelize.ColumnNumberToName(col)
	if from == to {
		return fmt.Sprintf("%s!$%s$%d", sheet, name, from)
	}
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", sheet, name, from, name, to)
}

func (w *WorkbookWriter) sheets(res *analytics.Results) []sheetSpec {
	top := analytics.TopN(res.Activity, w.topN, func(a models.CampaignActivity) float64 { return float64(a.TotalClicks) })

	return []sheetSpec{
		{
			name:    "top_activity_4h",
			headers: []string{"campaign", "total_clicks", "unique_users", "regions_count", "activity_percentage"},
			rows: rowsOf(top, func(a models.CampaignActivity) []any {
				return []any{strconv.Itoa(int(a.CampaignID)), a.TotalClicks, a.UniqueUsers, a.UniqueRegions, a.DurationPct}
			}),
			chart: &chartSpec{kind: excelize.Col, title: fmt.Sprintf("Top %d campaigns by clicks in the first window", w.topN), catCol: 1, valCol: 2},
		},
		{
			name: analytics.ArtifactActivity,
			headers: []string{"campaign_id", "campaign_name", "created_at", "total_clicks", "unique_users",
				"regions_count", "devices", "first_click", "last_click", "activity_duration_sec", "activity_percentage"},
			rows: rowsOf(res.Activity, func(a models.CampaignActivity) []any {
				devices, _ := json.Marshal(a.Devices)
				return []any{a.CampaignID, a.CampaignName, a.CreatedAt.Format(timeLayout), a.TotalClicks, a.UniqueUsers,
					a.UniqueRegions, string(devices), a.FirstClick.Format(timeLayout), a.LastClick.Format(timeLayout),
					a.DurationSeconds, a.DurationPct}
			}),
		},
		{
			name:    analytics.ArtifactDaily,
			headers: []string{"click_date", "total_clicks", "percentage"},
			rows:    rowsOf(res.Daily, periodRow),
			chart:   &chartSpec{kind: excelize.Line, title: "Clicks per day", catCol: 1, valCol: 2},
		},
		{
			name:    analytics.ArtifactMonthly,
			headers: []string{"click_month", "total_clicks", "percentage"},
			rows:    rowsOf(res.Monthly, periodRow),
			chart:   &chartSpec{kind: excelize.Col, title: "Clicks per month", catCol: 1, valCol: 2},
		},
		{
			name:    analytics.ArtifactHourly,
			headers: []string{"hour", "clicks", "unique_users", "percentage"},
			rows: rowsOf(res.Hourly, func(h models.HourlyActivity) []any {
				return []any{h.Hour, h.Clicks, h.UniqueUsers, h.Pct}
			}),
			chart: &chartSpec{kind: excelize.Col, title: "Activity by hour (UTC)", catCol: 1, valCol: 2},
		},
		{
			name:    analytics.ArtifactRegional,
			headers: []string{"region", "region_name", "clicks", "unique_users", "percentage"},
			rows: rowsOf(res.Regional, func(r models.RegionalActivity) []any {
				return []any{r.RegionID, r.RegionName, r.Clicks, r.UniqueUsers, r.Pct}
			}),
			chart: &chartSpec{kind: excelize.Bar, title: "Activity by region", catCol: 2, valCol: 3},
		},
		{
			name:    analytics.ArtifactCadenceDaily,
			headers: []string{"created_date", "day_of_week", "week_of_year", "campaigns_count"},
			rows: rowsOf(res.CadenceDaily, func(d models.DailyCadence) []any {
				return []any{d.Date.Format(dateLayout), d.Weekday, d.ISOWeek, d.Campaigns}
			}),
		},
		{
			name:    analytics.ArtifactCadenceMonthly,
			headers: []string{"year_month", "year", "month", "campaigns_count"},
			rows: rowsOf(res.CadenceMonthly, func(m models.MonthlyCadence) []any {
				return []any{m.YearMonth, m.Year, m.MonthName, m.Campaigns}
			}),
			chart: &chartSpec{kind: excelize.Col, title: "Campaigns created per month", catCol: 1, valCol: 4},
		},
		{
			name:    analytics.ArtifactResponse,
			headers: []string{"campaign_id", "campaign_name", "created_at", "first_click", "clicks", "response_time_sec"},
			rows: rowsOf(res.Responses, func(c models.CampaignResponse) []any {
				return []any{c.CampaignID, c.CampaignName, c.CreatedAt.Format(timeLayout), c.FirstClick.Format(timeLayout), c.Clicks, c.ResponseSeconds}
			}),
		},
		{
			name:    analytics.ArtifactResponseStats,
			headers: []string{"statistic", "value", "readable"},
			rows:    responseStatRows(res.ResponseStats),
		},
		{
			name:    analytics.ArtifactBestHours,
			headers: []string{"rank", "hour_utc", "hour_local", "clicks", "percentage"},
			rows: rowsOf(res.BestHours, func(b models.BestHour) []any {
				return []any{b.Rank, b.HourUTC, b.HourLocal, b.Clicks, b.Pct}
			}),
		},
		{
			name:    analytics.ArtifactActivitySummary,
			headers: []string{"metric", "count", "mean", "std", "min", "25%", "50%", "75%", "max"},
			rows: rowsOf(res.ActivitySummary, func(s models.MetricSummary) []any {
				return []any{s.Metric, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max}
			}),
		},
	}
}

func periodRow(p models.PeriodTotal) []any {
	return []any{p.Period, p.Clicks, p.Pct}
}

func responseStatRows(s models.ResponseStats) [][]any {
	if s.TotalCampaigns == 0 {
		return nil
	}
	return [][]any{
		{"total_campaigns", s.TotalCampaigns, ""},
		{"responded_campaigns", s.Responded, ""},
		{"response_rate", s.ResponseRate, ""},
		{"avg_response_sec", s.MeanSeconds, FormatTimedelta(s.MeanSeconds)},
		{"median_response_sec", s.MedianSeconds, FormatTimedelta(s.MedianSeconds)},
		{"min_response_sec", s.MinSeconds, FormatTimedelta(s.MinSeconds)},
		{"max_response_sec", s.MaxSeconds, FormatTimedelta(s.MaxSeconds)},
		{"std_response_sec", s.StdSeconds, ""},
		{"percentile_90", s.P90Seconds, FormatTimedelta(s.P90Seconds)},
		{"percentile_95", s.P95Seconds, FormatTimedelta(s.P95Seconds)},
	}
}

func rowsOf[T any](items []T, row func(T) []any) [][]any {
	out := make([][]any, len(items))
	for i, item := range items {
		out[i] = row(item)
	}
	return out
}
