// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package models

import (
	"time"
)

// CampaignActivity summarizes a campaign's clicks inside the early-activity
// window that follows its creation.
type CampaignActivity struct {
	CampaignID      int32          `json:"campaign_id"`
	CampaignName    string         `json:"campaign_name"`
	CreatedAt       time.Time      `json:"created_at"`
	TotalClicks     int            `json:"total_clicks"`
	UniqueUsers     int            `json:"unique_users"`
	UniqueRegions   int            `json:"unique_regions"`
	Devices         map[string]int `json:"devices"` // device -> clicks in window
	FirstClick      time.Time      `json:"first_click"`
	LastClick       time.Time      `json:"last_click"`
	DurationSeconds float64        `json:"duration_seconds"`
	DurationPct     float64        `json:"duration_pct"` // share of the window spanned, one decimal
}

// PeriodTotal is a click count for one calendar day or month.
type PeriodTotal struct {
	Period string    `json:"period"` // "2006-01-02" or "2006-01"
	Start  time.Time `json:"start"`
	Clicks int       `json:"clicks"`
	Pct    float64   `json:"pct"`
}

// HourlyActivity is click volume for one UTC hour of day.
type HourlyActivity struct {
	Hour        int     `json:"hour"`
	Clicks      int     `json:"clicks"`
	UniqueUsers int     `json:"unique_users"`
	Pct         float64 `json:"pct"`
}

// RegionalActivity is click volume for one region code, unresolved included.
type RegionalActivity struct {
	RegionID    int8    `json:"region_id"`
	RegionName  string  `json:"region_name"`
	Clicks      int     `json:"clicks"`
	UniqueUsers int     `json:"unique_users"`
	Pct         float64 `json:"pct"`
}

// DailyCadence counts campaigns created on one calendar date.
type DailyCadence struct {
	Date      time.Time `json:"date"`
	Weekday   string    `json:"weekday"`
	ISOYear   int       `json:"iso_year"`
	ISOWeek   int       `json:"iso_week"`
	Campaigns int       `json:"campaigns"`
}

// MonthlyCadence counts campaigns created in one calendar month.
type MonthlyCadence struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	YearMonth string `json:"year_month"`
	Campaigns int    `json:"campaigns"`
}

// CampaignResponse is the first-click latency of one responded campaign.
type CampaignResponse struct {
	CampaignID      int32     `json:"campaign_id"`
	CampaignName    string    `json:"campaign_name"`
	CreatedAt       time.Time `json:"created_at"`
	FirstClick      time.Time `json:"first_click"`
	Clicks          int       `json:"clicks"`
	ResponseSeconds float64   `json:"response_seconds"`
}

// ResponseStats describes the distribution of first-click latency.
// ResponseRate is Responded / TotalCampaigns as a ratio in [0, 1].
type ResponseStats struct {
	TotalCampaigns int     `json:"total_campaigns"`
	Responded      int     `json:"responded_campaigns"`
	ResponseRate   float64 `json:"response_rate"`
	MeanSeconds    float64 `json:"avg_response_sec"`
	MedianSeconds  float64 `json:"median_response_sec"`
	MinSeconds     float64 `json:"min_response_sec"`
	MaxSeconds     float64 `json:"max_response_sec"`
	StdSeconds     float64 `json:"std_response_sec"`
	P90Seconds     float64 `json:"percentile_90"`
	P95Seconds     float64 `json:"percentile_95"`
}

// BestHour is one of the highest-traffic hours with its local-clock equivalent.
type BestHour struct {
	Rank      int     `json:"rank"`
	HourUTC   int     `json:"hour_utc"`
	HourLocal int     `json:"hour_local"`
	Clicks    int     `json:"clicks"`
	Pct       float64 `json:"pct"`
}

// RegionReach is the distinct audience of a region that has coordinates.
type RegionReach struct {
	RegionID    int8    `json:"region_id"`
	RegionName  string  `json:"region_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	UniqueUsers int     `json:"unique_users"`
	LogUsers    float64 `json:"log_users"` // log1p(UniqueUsers), for color scales
}

// CadenceHeatCell is the mean daily campaign count for one ISO week number and
// weekday. Week numbers from different years share a cell.
type CadenceHeatCell struct {
	ISOWeek       int     `json:"iso_week"`
	Weekday       string  `json:"weekday"`
	WeekdayIndex  int     `json:"weekday_index"` // 0 = Monday
	MeanCampaigns float64 `json:"mean_campaigns"`
}

// ActivityLevelCount counts days of a weekday whose campaign volume fell into one level.
type ActivityLevelCount struct {
	Weekday      string `json:"weekday"`
	WeekdayIndex int    `json:"weekday_index"`
	Level        string `json:"level"`
	Days         int    `json:"days"`
}

// MetricSummary is a describe-style summary of one numeric column.
type MetricSummary struct {
	Metric string  `json:"metric"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// MetricLeader is one campaign in the top ranking of a summary metric.
type MetricLeader struct {
	Metric     string  `json:"metric"`
	Rank       int     `json:"rank"`
	CampaignID int32   `json:"campaign_id"`
	Value      float64 `json:"value"`
}
