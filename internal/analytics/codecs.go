// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/table"
)

// Artifact names, one per aggregate.
const (
	ArtifactActivity        = "campaign_activity_4h"
	ArtifactDaily           = "clicks_per_day"
	ArtifactMonthly         = "clicks_per_month"
	ArtifactHourly          = "activity_by_hour"
	ArtifactRegional        = "activity_by_region"
	ArtifactCadenceDaily    = "campaign_dynamics_daily"
	ArtifactCadenceMonthly  = "campaign_dynamics_monthly"
	ArtifactResponse        = "response_analysis"
	ArtifactResponseStats   = "response_stats"
	ArtifactBestHours       = "best_hours"
	ArtifactRegionReach     = "region_reach"
	ArtifactCadenceHeatmap  = "cadence_heatmap"
	ArtifactActivityLevels  = "activity_levels"
	ArtifactActivitySummary = "activity_summary"
	ArtifactActivityLeaders = "activity_leaders"
)

// Artifacts lists every aggregate artifact in the order the engine produces them.
var Artifacts = []string{
	ArtifactActivity, ArtifactDaily, ArtifactMonthly, ArtifactHourly, ArtifactRegional,
	ArtifactCadenceDaily, ArtifactCadenceMonthly, ArtifactResponse, ArtifactResponseStats,
	ArtifactBestHours, ArtifactRegionReach, ArtifactCadenceHeatmap, ArtifactActivityLevels,
	ArtifactActivitySummary, ArtifactActivityLeaders,
}

var activityCodec = table.Codec[models.CampaignActivity]{
	Columns: []table.Column{
		{Name: "campaign_id", Kind: table.KindInt},
		{Name: "campaign_name", Kind: table.KindString},
		{Name: "created_at", Kind: table.KindTime},
		{Name: "total_clicks", Kind: table.KindInt},
		{Name: "unique_users", Kind: table.KindInt},
		{Name: "regions_count", Kind: table.KindInt},
		{Name: "devices", Kind: table.KindString},
		{Name: "first_click", Kind: table.KindTime},
		{Name: "last_click", Kind: table.KindTime},
		{Name: "activity_duration_sec", Kind: table.KindFloat},
		{Name: "activity_percentage", Kind: table.KindFloat},
	},
	Encode: func(a models.CampaignActivity) []any {
		devices, err := json.Marshal(a.Devices)
		if err != nil {
			devices = []byte("{}")
		}
		return []any{
			a.CampaignID, a.CampaignName, a.CreatedAt, a.TotalClicks, a.UniqueUsers, a.UniqueRegions,
			string(devices), a.FirstClick, a.LastClick, a.DurationSeconds, a.DurationPct,
		}
	},
	Decode: func(r table.Row) (models.CampaignActivity, error) {
		a := models.CampaignActivity{
			CampaignID:      int32(r.Int("campaign_id")),
			CampaignName:    r.String("campaign_name"),
			CreatedAt:       r.Time("created_at"),
			TotalClicks:     int(r.Int("total_clicks")),
			UniqueUsers:     int(r.Int("unique_users")),
			UniqueRegions:   int(r.Int("regions_count")),
			FirstClick:      r.Time("first_click"),
			LastClick:       r.Time("last_click"),
			DurationSeconds: r.Float("activity_duration_sec"),
			DurationPct:     r.Float("activity_percentage"),
		}
		if raw := r.String("devices"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &a.Devices); err != nil {
				return a, fmt.Errorf("devices for campaign %d: %w", a.CampaignID, err)
			}
		}
		return a, nil
	},
}

var periodCodec = table.Codec[models.PeriodTotal]{
	Columns: []table.Column{
		{Name: "period", Kind: table.KindString},
		{Name: "start", Kind: table.KindTime},
		{Name: "total_clicks", Kind: table.KindInt},
		{Name: "percentage", Kind: table.KindFloat},
	},
	Encode: func(p models.PeriodTotal) []any {
		return []any{p.Period, p.Start, p.Clicks, p.Pct}
	},
	Decode: func(r table.Row) (models.PeriodTotal, error) {
		return models.PeriodTotal{
			Period: r.String("period"),
			Start:  r.Time("start"),
			Clicks: int(r.Int("total_clicks")),
			Pct:    r.Float("percentage"),
		}, nil
	},
}

var hourlyCodec = table.Codec[models.HourlyActivity]{
	Columns: []table.Column{
		{Name: "hour", Kind: table.KindInt},
		{Name: "clicks", Kind: table.KindInt},
		{Name: "unique_users", Kind: table.KindInt},
		{Name: "percentage", Kind: table.KindFloat},
	},
	Encode: func(h models.HourlyActivity) []any {
		return []any{h.Hour, h.Clicks, h.UniqueUsers, h.Pct}
	},
	Decode: func(r table.Row) (models.HourlyActivity, error) {
		return models.HourlyActivity{
			Hour:        int(r.Int("hour")),
			Clicks:      int(r.Int("clicks")),
			UniqueUsers: int(r.Int("unique_users")),
			Pct:         r.Float("percentage"),
		}, nil
	},
}

var regionalCodec = table.Codec[models.RegionalActivity]{
	Columns: []table.Column{
		{Name: "region", Kind: table.KindInt},
		{Name: "region_name", Kind: table.KindString},
		{Name: "clicks", Kind: table.KindInt},
		{Name: "unique_users", Kind: table.KindInt},
		{Name: "percentage", Kind: table.KindFloat},
	},
	Encode: func(a models.RegionalActivity) []any {
		return []any{a.RegionID, a.RegionName, a.Clicks, a.UniqueUsers, a.Pct}
	},
	Decode: func(r table.Row) (models.RegionalActivity, error) {
		return models.RegionalActivity{
			RegionID:    int8(r.Int("region")),
			RegionName:  r.String("region_name"),
			Clicks:      int(r.Int("clicks")),
			UniqueUsers: int(r.Int("unique_users")),
			Pct:         r.Float("percentage"),
		}, nil
	},
}

var dailyCadenceCodec = table.Codec[models.DailyCadence]{
	Columns: []table.Column{
		{Name: "created_date", Kind: table.KindTime},
		{Name: "day_of_week", Kind: table.KindString},
		{Name: "iso_year", Kind: table.KindInt},
		{Name: "week_of_year", Kind: table.KindInt},
		{Name: "campaigns_count", Kind: table.KindInt},
	},
	Encode: func(d models.DailyCadence) []any {
		return []any{d.Date, d.Weekday, d.ISOYear, d.ISOWeek, d.Campaigns}
	},
	Decode: func(r table.Row) (models.DailyCadence, error) {
		return models.DailyCadence{
			Date:      r.Time("created_date"),
			Weekday:   r.String("day_of_week"),
			ISOYear:   int(r.Int("iso_year")),
			ISOWeek:   int(r.Int("week_of_year")),
			Campaigns: int(r.Int("campaigns_count")),
		}, nil
	},
}

var monthlyCadenceCodec = table.Codec[models.MonthlyCadence]{
	Columns: []table.Column{
		{Name: "year", Kind: table.KindInt},
		{Name: "month_num", Kind: table.KindInt},
		{Name: "month", Kind: table.KindString},
		{Name: "year_month", Kind: table.KindString},
		{Name: "campaigns_count", Kind: table.KindInt},
	},
	Encode: func(m models.MonthlyCadence) []any {
		return []any{m.Year, m.Month, m.MonthName, m.YearMonth, m.Campaigns}
	},
	Decode: func(r table.Row) (models.MonthlyCadence, error) {
		return models.MonthlyCadence{
			Year:      int(r.Int("year")),
			Month:     int(r.Int("month_num")),
			MonthName: r.String("month"),
			YearMonth: r.String("year_month"),
			Campaigns: int(r.Int("campaigns_count")),
		}, nil
	},
}

var responseCodec = table.Codec[models.CampaignResponse]{
	Columns: []table.Column{
		{Name: "campaign_id", Kind: table.KindInt},
		{Name: "campaign_name", Kind: table.KindString},
		{Name: "created_at", Kind: table.KindTime},
		{Name: "first_click", Kind: table.KindTime},
		{Name: "clicks", Kind: table.KindInt},
		{Name: "response_time_sec", Kind: table.KindFloat},
	},
	Encode: func(c models.CampaignResponse) []any {
		return []any{c.CampaignID, c.CampaignName, c.CreatedAt, c.FirstClick, c.Clicks, c.ResponseSeconds}
	},
	Decode: func(r table.Row) (models.CampaignResponse, error) {
		return models.CampaignResponse{
			CampaignID:      int32(r.Int("campaign_id")),
			CampaignName:    r.String("campaign_name"),
			CreatedAt:       r.Time("created_at"),
			FirstClick:      r.Time("first_click"),
			Clicks:          int(r.Int("clicks")),
			ResponseSeconds: r.Float("response_time_sec"),
		}, nil
	},
}

// responseStatsCodec stores the statistics as a single-row table.
var responseStatsCodec = table.Codec[models.ResponseStats]{
	Columns: []table.Column{
		{Name: "total_campaigns", Kind: table.KindInt},
		{Name: "responded_campaigns", Kind: table.KindInt},
		{Name: "response_rate", Kind: table.KindFloat},
		{Name: "avg_response_sec", Kind: table.KindFloat},
		{Name: "median_response_sec", Kind: table.KindFloat},
		{Name: "min_response_sec", Kind: table.KindFloat},
		{Name: "max_response_sec", Kind: table.KindFloat},
		{Name: "std_response_sec", Kind: table.KindFloat},
		{Name: "percentile_90", Kind: table.KindFloat},
		{Name: "percentile_95", Kind: table.KindFloat},
	},
	Encode: func(s models.ResponseStats) []any {
		return []any{
			s.TotalCampaigns, s.Responded, s.ResponseRate, s.MeanSeconds, s.MedianSeconds,
			s.MinSeconds, s.MaxSeconds, s.StdSeconds, s.P90Seconds, s.P95Seconds,
		}
	},
	Decode: func(r table.Row) (models.ResponseStats, error) {
		return models.ResponseStats{
			TotalCampaigns: int(r.Int("total_campaigns")),
			Responded:      int(r.Int("responded_campaigns")),
			ResponseRate:   r.Float("response_rate"),
			MeanSeconds:    r.Float("avg_response_sec"),
			MedianSeconds:  r.Float("median_response_sec"),
			MinSeconds:     r.Float("min_response_sec"),
			MaxSeconds:     r.Float("max_response_sec"),
			StdSeconds:     r.Float("std_response_sec"),
			P90Seconds:     r.Float("percentile_90"),
			P95Seconds:     r.Float("percentile_95"),
		}, nil
	},
}

var bestHourCodec = table.Codec[models.BestHour]{
	Columns: []table.Column{
		{Name: "rank", Kind: table.KindInt},
		{Name: "hour_utc", Kind: table.KindInt},
		{Name: "hour_local", Kind: table.KindInt},
		{Name: "clicks", Kind: table.KindInt},
		{Name: "percentage", Kind: table.KindFloat},
	},
	Encode: func(b models.BestHour) []any {
		return []any{b.Rank, b.HourUTC, b.HourLocal, b.Clicks, b.Pct}
	},
	Decode: func(r table.Row) (models.BestHour, error) {
		return models.BestHour{
			Rank:      int(r.Int("rank")),
			HourUTC:   int(r.Int("hour_utc")),
			HourLocal: int(r.Int("hour_local")),
			Clicks:    int(r.Int("clicks")),
			Pct:       r.Float("percentage"),
		}, nil
	},
}

var reachCodec = table.Codec[models.RegionReach]{
	Columns: []table.Column{
		{Name: "region", Kind: table.KindInt},
		{Name: "region_name", Kind: table.KindString},
		{Name: "lat", Kind: table.KindFloat},
		{Name: "lon", Kind: table.KindFloat},
		{Name: "unique_users", Kind: table.KindInt},
		{Name: "log_users", Kind: table.KindFloat},
	},
	Encode: func(r models.RegionReach) []any {
		return []any{r.RegionID, r.RegionName, r.Latitude, r.Longitude, r.UniqueUsers, r.LogUsers}
	},
	Decode: func(r table.Row) (models.RegionReach, error) {
		return models.RegionReach{
			RegionID:    int8(r.Int("region")),
			RegionName:  r.String("region_name"),
			Latitude:    r.Float("lat"),
			Longitude:   r.Float("lon"),
			UniqueUsers: int(r.Int("unique_users")),
			LogUsers:    r.Float("log_users"),
		}, nil
	},
}

var heatCodec = table.Codec[models.CadenceHeatCell]{
	Columns: []table.Column{
		{Name: "week_of_year", Kind: table.KindInt},
		{Name: "day_of_week", Kind: table.KindString},
		{Name: "weekday_index", Kind: table.KindInt},
		{Name: "mean_campaigns", Kind: table.KindFloat},
	},
	Encode: func(c models.CadenceHeatCell) []any {
		return []any{c.ISOWeek, c.Weekday, c.WeekdayIndex, c.MeanCampaigns}
	},
	Decode: func(r table.Row) (models.CadenceHeatCell, error) {
		return models.CadenceHeatCell{
			ISOWeek:       int(r.Int("week_of_year")),
			Weekday:       r.String("day_of_week"),
			WeekdayIndex:  int(r.Int("weekday_index")),
			MeanCampaigns: r.Float("mean_campaigns"),
		}, nil
	},
}

var levelCodec = table.Codec[models.ActivityLevelCount]{
	Columns: []table.Column{
		{Name: "day_of_week", Kind: table.KindString},
		{Name: "weekday_index", Kind: table.KindInt},
		{Name: "activity_level", Kind: table.KindString},
		{Name: "count", Kind: table.KindInt},
	},
	Encode: func(l models.ActivityLevelCount) []any {
		return []any{l.Weekday, l.WeekdayIndex, l.Level, l.Days}
	},
	Decode: func(r table.Row) (models.ActivityLevelCount, error) {
		return models.ActivityLevelCount{
			Weekday:      r.String("day_of_week"),
			WeekdayIndex: int(r.Int("weekday_index")),
			Level:        r.String("activity_level"),
			Days:         int(r.Int("count")),
		}, nil
	},
}

var summaryCodec = table.Codec[models.MetricSummary]{
	Columns: []table.Column{
		{Name: "metric", Kind: table.KindString},
		{Name: "count", Kind: table.KindInt},
		{Name: "mean", Kind: table.KindFloat},
		{Name: "std", Kind: table.KindFloat},
		{Name: "min", Kind: table.KindFloat},
		{Name: "25%", Kind: table.KindFloat},
		{Name: "50%", Kind: table.KindFloat},
		{Name: "75%", Kind: table.KindFloat},
		{Name: "max", Kind: table.KindFloat},
	},
	Encode: func(s models.MetricSummary) []any {
		return []any{s.Metric, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max}
	},
	Decode: func(r table.Row) (models.MetricSummary, error) {
		return models.MetricSummary{
			Metric: r.String("metric"),
			Count:  int(r.Int("count")),
			Mean:   r.Float("mean"),
			Std:    r.Float("std"),
			Min:    r.Float("min"),
			P25:    r.Float("25%"),
			P50:    r.Float("50%"),
			P75:    r.Float("75%"),
			Max:    r.Float("max"),
		}, nil
	},
}

var leaderCodec = table.Codec[models.MetricLeader]{
	Columns: []table.Column{
		{Name: "metric", Kind: table.KindString},
		{Name: "rank", Kind: table.KindInt},
		{Name: "campaign_id", Kind: table.KindInt},
		{Name: "value", Kind: table.KindFloat},
	},
	Encode: func(l models.MetricLeader) []any {
		return []any{l.Metric, l.Rank, l.CampaignID, l.Value}
	},
	Decode: func(r table.Row) (models.MetricLeader, error) {
		return models.MetricLeader{
			Metric:     r.String("metric"),
			Rank:       int(r.Int("rank")),
			CampaignID: int32(r.Int("campaign_id")),
			Value:      r.Float("value"),
		}, nil
	},
}
