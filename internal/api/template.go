// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package api

import (
	"embed"
	"html/template"
	"strconv"
	"time"

	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/report"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTemplate = template.Must(template.New("dashboard.html.tmpl").ParseFS(templateFS, "templates/dashboard.html.tmpl"))

type pageData struct {
	GeneratedAt   string
	RunID         string
	Panels        []pagePanel
	ResponseStats report.ResponseStatsDocument
	BestHours     []models.BestHour
}

// pagePanel is a panel flattened for the template. Single-series panels render
// as horizontal bars; multi-series panels render as a grid of shaded cells.
type pagePanel struct {
	ID      string
	Title   string
	XLabel  string
	YLabel  string
	Empty   bool
	Grid    bool
	Columns []string
	Rows    []pageRow
}

type pageRow struct {
	Label string
	Cells []pageCell
}

type pageCell struct {
	Text  string
	Width int     // bar width in percent of the panel maximum
	Shade float64 // grid cell opacity in [0,1]
}

func newPageData(d report.Dashboard) pageData {
	data := pageData{
		GeneratedAt:   d.GeneratedAt.Format(time.RFC1123),
		RunID:         d.RunID,
		Panels:        make([]pagePanel, 0, len(d.Panels)),
		ResponseStats: report.NewResponseStatsDocument(d.ResponseStats),
		BestHours:     d.BestHours,
	}
	for _, p := range d.Panels {
		data.Panels = append(data.Panels, newPagePanel(p))
	}
	return data
}

func newPagePanel(p report.Panel) pagePanel {
	out := pagePanel{
		ID:     p.ID,
		Title:  p.Title,
		XLabel: p.XLabel,
		YLabel: p.YLabel,
		Empty:  p.Empty,
		Grid:   p.Kind == report.PanelHeatmap || p.Kind == report.PanelStackedBar,
	}
	if p.Empty {
		return out
	}

	if !out.Grid {
		for _, pt := range p.Series[0].Points {
			out.Rows = append(out.Rows, pageRow{
				Label: pt.Label,
				Cells: []pageCell{{Text: formatValue(pt.Value), Width: scale(pt.Value, p.Max)}},
			})
		}
		return out
	}

	for _, pt := range p.Series[0].Points {
		out.Columns = append(out.Columns, pt.Label)
	}
	for _, s := range p.Series {
		row := pageRow{Label: s.Name}
		for _, pt := range s.Points {
			row.Cells = append(row.Cells, pageCell{Text: formatValue(pt.Value), Shade: float64(scale(pt.Value, p.Max)) / 100})
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func scale(v, max float64) int {
	if max <= 0 || v <= 0 {
		return 0
	}
	return int(v / max * 100)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
