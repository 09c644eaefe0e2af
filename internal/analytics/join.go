// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"time"

	"github.com/tomtom215/clickscope/internal/models"
)

// Joined is a click with its campaign, if the campaign id resolved.
type Joined struct {
	models.Click

	// Campaign is nil for clicks whose campaign id has no campaign row.
	Campaign *models.Campaign
}

// Matched reports whether the click resolved to a campaign.
func (j *Joined) Matched() bool {
	return j.Campaign != nil
}

// Elapsed is the click time minus the campaign creation time. ok is false
// for unmatched clicks. The value may be negative.
func (j *Joined) Elapsed() (d time.Duration, ok bool) {
	if j.Campaign == nil {
		return 0, false
	}
	return j.ClickTime.Sub(j.Campaign.CreatedAt), true
}

// Hour is the UTC hour of day of the click.
func (j *Joined) Hour() int {
	return j.ClickTime.UTC().Hour()
}

// Date is the UTC calendar day of the click.
func (j *Joined) Date() time.Time {
	return dayOf(j.ClickTime)
}

// Month is the first instant of the click's UTC calendar month.
func (j *Joined) Month() time.Time {
	t := j.ClickTime.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Join left-joins clicks to campaigns on campaign id. Every click appears
// exactly once, in input order. When campaign ids repeat, the first row wins.
func Join(clicks []models.Click, campaigns []models.Campaign) []Joined {
	byID := make(map[int32]*models.Campaign, len(campaigns))
	for i := range campaigns {
		if _, dup := byID[campaigns[i].ID]; !dup {
			byID[campaigns[i].ID] = &campaigns[i]
		}
	}

	out := make([]Joined, len(clicks))
	for i := range clicks {
		out[i] = Joined{Click: clicks[i], Campaign: byID[clicks[i].CampaignID]}
	}
	return out
}

// Unmatched counts joined rows without a campaign.
func Unmatched(joined []Joined) int {
	n := 0
	for i := range joined {
		if joined[i].Campaign == nil {
			n++
		}
	}
	return n
}
