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

// DefaultWindow is the early-activity window after campaign creation.
const DefaultWindow = 4 * time.Hour

type activityAcc struct {
	campaign *models.Campaign
	clicks   int
	users    map[string]struct{}
	regions  map[int8]struct{}
	devices  map[string]int
	first    time.Time
	last     time.Time
}

// FirstWindowActivity aggregates matched clicks whose elapsed time since
// campaign creation is at most window. Clicks logged before the recorded
// creation time have negative elapsed time and are counted. Rows are ordered
// by campaign id.
func FirstWindowActivity(joined []Joined, window time.Duration) []models.CampaignActivity {
	if window <= 0 {
		window = DefaultWindow
	}

	accs := make(map[int32]*activityAcc)
	for i := range joined {
		j := &joined[i]
		elapsed, ok := j.Elapsed()
		if !ok || elapsed > window {
			continue
		}

		acc, found := accs[j.Campaign.ID]
		if !found {
			acc = &activityAcc{
				campaign: j.Campaign,
				users:    make(map[string]struct{}),
				regions:  make(map[int8]struct{}),
				devices:  make(map[string]int),
				first:    j.ClickTime,
				last:     j.ClickTime,
			}
			accs[j.Campaign.ID] = acc
		}
		acc.clicks++
		acc.users[j.UID] = struct{}{}
		acc.regions[j.Region] = struct{}{}
		acc.devices[j.Device]++
		if j.ClickTime.Before(acc.first) {
			acc.first = j.ClickTime
		}
		if j.ClickTime.After(acc.last) {
			acc.last = j.ClickTime
		}
	}

	out := make([]models.CampaignActivity, 0, len(accs))
	for id, acc := range accs {
		dur := acc.last.Sub(acc.first).Seconds()
		out = append(out, models.CampaignActivity{
			CampaignID:      id,
			CampaignName:    acc.campaign.Name,
			CreatedAt:       acc.campaign.CreatedAt.UTC(),
			TotalClicks:     acc.clicks,
			UniqueUsers:     len(acc.users),
			UniqueRegions:   len(acc.regions),
			Devices:         acc.devices,
			FirstClick:      acc.first.UTC(),
			LastClick:       acc.last.UTC(),
			DurationSeconds: dur,
			DurationPct:     Round1(dur / window.Seconds() * 100),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CampaignID < out[j].CampaignID })
	return out
}
