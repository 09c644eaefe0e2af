// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"math"
	"sort"

	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/reference"
)

type volumeAcc struct {
	seen   int // first-seen position of the group key
	clicks int
	users  map[string]struct{}
}

func (a *volumeAcc) add(uid string) {
	a.clicks++
	a.users[uid] = struct{}{}
}

// HourlyActivity groups clicks by UTC hour of day. Only hours that have
// clicks appear, in ascending order.
func HourlyActivity(joined []Joined) []models.HourlyActivity {
	accs := make(map[int]*volumeAcc)
	for i := range joined {
		h := joined[i].Hour()
		acc, ok := accs[h]
		if !ok {
			acc = &volumeAcc{users: make(map[string]struct{})}
			accs[h] = acc
		}
		acc.add(joined[i].UID)
	}

	out := make([]models.HourlyActivity, 0, len(accs))
	for h, acc := range accs {
		out = append(out, models.HourlyActivity{
			Hour:        h,
			Clicks:      acc.clicks,
			UniqueUsers: len(acc.users),
			Pct:         pct(acc.clicks, len(joined)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// RegionalActivity groups clicks by region code, the unresolved code included.
// Rows are ordered by clicks descending; ties keep first-seen order.
func RegionalActivity(joined []Joined, dir *reference.Directory) []models.RegionalActivity {
	accs := make(map[int8]*volumeAcc)
	for i := range joined {
		r := joined[i].Region
		acc, ok := accs[r]
		if !ok {
			acc = &volumeAcc{seen: len(accs), users: make(map[string]struct{})}
			accs[r] = acc
		}
		acc.add(joined[i].UID)
	}

	out := make([]models.RegionalActivity, 0, len(accs))
	order := make(map[int8]int, len(accs))
	for id, acc := range accs {
		order[id] = acc.seen
		out = append(out, models.RegionalActivity{
			RegionID:    id,
			RegionName:  regionName(dir, id),
			Clicks:      acc.clicks,
			UniqueUsers: len(acc.users),
			Pct:         pct(acc.clicks, len(joined)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return order[out[i].RegionID] < order[out[j].RegionID]
	})
	return out
}

// TopRegions returns the n busiest resolved regions.
func TopRegions(rows []models.RegionalActivity, n int) []models.RegionalActivity {
	resolved := make([]models.RegionalActivity, 0, len(rows))
	for _, r := range rows {
		if r.RegionID != models.UnresolvedRegion {
			resolved = append(resolved, r)
		}
	}
	return TopN(resolved, n, func(r models.RegionalActivity) float64 { return float64(r.Clicks) })
}

// BestHours picks the k busiest UTC hours and converts each to local clock
// time at offsetHours from UTC.
func BestHours(hourly []models.HourlyActivity, k, offsetHours int) []models.BestHour {
	top := TopN(hourly, k, func(h models.HourlyActivity) float64 { return float64(h.Clicks) })
	out := make([]models.BestHour, len(top))
	for i, h := range top {
		out[i] = models.BestHour{
			Rank:      i + 1,
			HourUTC:   h.Hour,
			HourLocal: ((h.Hour+offsetHours)%24 + 24) % 24,
			Clicks:    h.Clicks,
			Pct:       h.Pct,
		}
	}
	return out
}

// RegionReach counts distinct users per region that has reference
// coordinates. Regions without coordinates are dropped. Rows are ordered by
// region code.
func RegionReach(joined []Joined, dir *reference.Directory) []models.RegionReach {
	users := make(map[int8]map[string]struct{})
	for i := range joined {
		r := joined[i].Region
		set, ok := users[r]
		if !ok {
			set = make(map[string]struct{})
			users[r] = set
		}
		set[joined[i].UID] = struct{}{}
	}

	out := make([]models.RegionReach, 0, len(users))
	if dir == nil {
		return out
	}
	for id, set := range users {
		lat, lon, ok := dir.Coordinates(id)
		if !ok {
			continue
		}
		out = append(out, models.RegionReach{
			RegionID:    id,
			RegionName:  dir.Name(id),
			Latitude:    lat,
			Longitude:   lon,
			UniqueUsers: len(set),
			LogUsers:    math.Log1p(float64(len(set))),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegionID < out[j].RegionID })
	return out
}

func regionName(dir *reference.Directory, id int8) string {
	if dir == nil {
		return reference.UnresolvedName
	}
	return dir.Name(id)
}
