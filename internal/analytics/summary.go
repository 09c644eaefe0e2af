// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"github.com/tomtom215/clickscope/internal/models"
)

// Summary metric names.
const (
	MetricTotalClicks        = "total_clicks"
	MetricUniqueUsers        = "unique_users"
	MetricRegionsCount       = "regions_count"
	MetricActivityPercentage = "activity_percentage"
)

// LeadersPerMetric is how many campaigns Leaders ranks per metric.
const LeadersPerMetric = 5

type activityMetric struct {
	name  string
	value func(models.CampaignActivity) float64
}

var activityMetrics = []activityMetric{
	{MetricTotalClicks, func(a models.CampaignActivity) float64 { return float64(a.TotalClicks) }},
	{MetricUniqueUsers, func(a models.CampaignActivity) float64 { return float64(a.UniqueUsers) }},
	{MetricRegionsCount, func(a models.CampaignActivity) float64 { return float64(a.UniqueRegions) }},
	{MetricActivityPercentage, func(a models.CampaignActivity) float64 { return a.DurationPct }},
}

// Summarize describes each numeric activity metric. With no activity rows
// every metric is reported with Count 0 and zero statistics.
func Summarize(activity []models.CampaignActivity) []models.MetricSummary {
	out := make([]models.MetricSummary, 0, len(activityMetrics))
	for _, m := range activityMetrics {
		values := make([]float64, len(activity))
		for i, a := range activity {
			values[i] = m.value(a)
		}
		out = append(out, describe(m.name, values))
	}
	return out
}

func describe(name string, values []float64) models.MetricSummary {
	s := models.MetricSummary{Metric: name, Count: len(values)}
	if len(values) == 0 {
		return s
	}
	sorted := sortedCopy(values)
	s.Mean = Mean(sorted)
	s.Std = StdDev(sorted)
	s.Min = sorted[0]
	s.P25 = Percentile(sorted, 25)
	s.P50 = Percentile(sorted, 50)
	s.P75 = Percentile(sorted, 75)
	s.Max = sorted[len(sorted)-1]
	return s
}

// Leaders ranks the top campaigns for each summary metric. Ties keep
// campaign id order.
func Leaders(activity []models.CampaignActivity, n int) []models.MetricLeader {
	var out []models.MetricLeader
	for _, m := range activityMetrics {
		for i, a := range TopN(activity, n, m.value) {
			out = append(out, models.MetricLeader{
				Metric:     m.name,
				Rank:       i + 1,
				CampaignID: a.CampaignID,
				Value:      m.value(a),
			})
		}
	}
	return out
}
