// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package models

import (
	"time"
)

// UnresolvedRegion is the region code clicks carry when geolocation failed.
const UnresolvedRegion int8 = 0

// Click is one retained click-stream event. Every Click has already passed
// the device allow-list and bot-signature filter.
type Click struct {
	UID        string    `json:"uid"`
	MemberID   int32     `json:"member_id"`
	CampaignID int32     `json:"campaign_id"`
	Region     int8      `json:"region"`
	OS         string    `json:"os"`
	Browser    string    `json:"browser"`
	Device     string    `json:"device"`
	Language   string    `json:"language"`
	ClickTime  time.Time `json:"click_time"`
	ClickDate  time.Time `json:"click_date"`
}

// Campaign is a marketing campaign. CreatedAt is the campaign start.
type Campaign struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Region maps a region code to its display name.
type Region struct {
	ID   int8   `json:"region_id"`
	Name string `json:"name"`
}
