// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

/*
Package models defines the records and aggregate rows shared across Clickscope.

Model Categories:

1. Source Records (produced by ingest, immutable afterwards):
  - Click: filtered click-stream event
  - Campaign: campaign id, name and creation instant
  - Region: region code and display name

2. Aggregate Rows (pure functions of the joined tables):
  - CampaignActivity, PeriodTotal, HourlyActivity, RegionalActivity
  - DailyCadence, MonthlyCadence
  - CampaignResponse, ResponseStats
  - BestHour, RegionReach, CadenceHeatCell, ActivityLevelCount, MetricSummary

3. API Models:
  - APIResponse, Metadata, APIError: dashboard JSON envelope
  - HealthStatus, ArtifactRecord

All time values are UTC.
*/
package models
