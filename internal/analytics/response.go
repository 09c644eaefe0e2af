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

type firstClick struct {
	at     time.Time
	clicks int
}

// ResponseLatency measures, for every campaign with at least one click, the
// time from creation to its first click. Clicks on unknown campaigns are
// ignored. Rows are ordered by campaign id and keep negative latencies. Every
// clicked campaign counts as responded; the latency statistics use only
// latencies >= 0.
func ResponseLatency(campaigns []models.Campaign, clicks []models.Click) ([]models.CampaignResponse, models.ResponseStats) {
	known := make(map[int32]*models.Campaign, len(campaigns))
	for i := range campaigns {
		if _, dup := known[campaigns[i].ID]; !dup {
			known[campaigns[i].ID] = &campaigns[i]
		}
	}

	firsts := make(map[int32]*firstClick)
	for i := range clicks {
		c := &clicks[i]
		if _, ok := known[c.CampaignID]; !ok {
			continue
		}
		fc, ok := firsts[c.CampaignID]
		if !ok {
			firsts[c.CampaignID] = &firstClick{at: c.ClickTime, clicks: 1}
			continue
		}
		fc.clicks++
		if c.ClickTime.Before(fc.at) {
			fc.at = c.ClickTime
		}
	}

	rows := make([]models.CampaignResponse, 0, len(firsts))
	latencies := make([]float64, 0, len(firsts))
	for id, fc := range firsts {
		camp := known[id]
		secs := fc.at.Sub(camp.CreatedAt).Seconds()
		rows = append(rows, models.CampaignResponse{
			CampaignID:      id,
			CampaignName:    camp.Name,
			CreatedAt:       camp.CreatedAt.UTC(),
			FirstClick:      fc.at.UTC(),
			Clicks:          fc.clicks,
			ResponseSeconds: secs,
		})
		if secs >= 0 {
			latencies = append(latencies, secs)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CampaignID < rows[j].CampaignID })

	stats := models.ResponseStats{
		TotalCampaigns: len(known),
		Responded:      len(firsts),
	}
	if stats.TotalCampaigns > 0 {
		stats.ResponseRate = float64(stats.Responded) / float64(stats.TotalCampaigns)
	}
	if len(latencies) > 0 {
		sorted := sortedCopy(latencies)
		stats.MeanSeconds = Mean(sorted)
		stats.MedianSeconds = Median(sorted)
		stats.MinSeconds = sorted[0]
		stats.MaxSeconds = sorted[len(sorted)-1]
		stats.StdSeconds = StdDev(sorted)
		stats.P90Seconds = Percentile(sorted, 90)
		stats.P95Seconds = Percentile(sorted, 95)
	}
	return rows, stats
}
