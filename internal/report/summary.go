// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package report

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/logging"
)

// LogSummaries logs the run's headline numbers: per-metric leaders, best
// hours, top regions and response statistics.
func LogSummaries(ctx context.Context, res *analytics.Results, topRegions int) {
	log := logging.Ctx(ctx)

	log.Info().
		Int("joined_rows", res.JoinedRows).
		Int("unmatched_rows", res.UnmatchedRows).
		Int("campaigns_active", len(res.Activity)).
		Dur("window", res.Window).
		Msg("Activity summary")

	for _, s := range res.ActivitySummary {
		log.Info().
			Str("metric", s.Metric).
			Int("count", s.Count).
			Float64("mean", s.Mean).
			Float64("std", s.Std).
			Float64("min", s.Min).
			Float64("p50", s.P50).
			Float64("max", s.Max).
			Msg("Metric distribution")
	}

	byMetric := make(map[string]*zerolog.Array)
	order := make([]string, 0, 4)
	for _, l := range res.ActivityLeaders {
		arr, ok := byMetric[l.Metric]
		if !ok {
			arr = zerolog.Arr()
			byMetric[l.Metric] = arr
			order = append(order, l.Metric)
		}
		arr.Dict(zerolog.Dict().Int32("campaign_id", l.CampaignID).Float64("value", l.Value))
	}
	for _, metric := range order {
		log.Info().Str("metric", metric).Array("leaders", byMetric[metric]).Msg("Top campaigns")
	}

	for _, h := range res.BestHours {
		log.Info().
			Int("rank", h.Rank).
			Int("hour_utc", h.HourUTC).
			Int("hour_local", h.HourLocal).
			Int("clicks", h.Clicks).
			Float64("pct", h.Pct).
			Msg("Best hour")
	}

	for i, r := range res.TopRegions {
		if i >= topRegions {
			break
		}
		log.Info().
			Int("rank", i+1).
			Int8("region_id", r.RegionID).
			Str("region", r.RegionName).
			Int("clicks", r.Clicks).
			Int("unique_users", r.UniqueUsers).
			Msg("Top region")
	}

	s := res.ResponseStats
	log.Info().
		Int("total_campaigns", s.TotalCampaigns).
		Int("responded", s.Responded).
		Float64("response_rate", s.ResponseRate).
		Str("median", FormatTimedelta(s.MedianSeconds)).
		Str("p90", FormatTimedelta(s.P90Seconds)).
		Str("p95", FormatTimedelta(s.P95Seconds)).
		Msg("Response latency")
}
