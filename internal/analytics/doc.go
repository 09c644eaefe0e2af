// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package analytics joins clicks to campaigns and computes the click-stream
// aggregates.
//
// Every aggregate is a pure function from joined rows (or campaigns) to a
// slice of models rows, so each can be tested without the engine:
//
//	FirstWindowActivity  campaign_activity_4h
//	DailyTotals          clicks_per_day
//	MonthlyTotals        clicks_per_month
//	HourlyActivity       activity_by_hour
//	RegionalActivity     activity_by_region
//	Cadence              campaign_dynamics_daily, campaign_dynamics_monthly
//	ResponseLatency      response_analysis, response_stats
//
// BestHours, RegionReach, CadenceHeatmap, ActivityLevels, Summarize and
// Leaders derive presentation tables from the above.
//
// The join is a left outer join. Clicks on unknown campaigns have a nil
// Campaign; they count toward period, hourly and regional totals but never
// toward window activity or response latency.
//
// All grouping uses UTC. Empty input yields empty aggregates and zeroed
// response statistics, never an error.
//
// Engine.Run fans the aggregates out on a pond worker pool and persists each
// one through persist.Cached.
package analytics
