// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package reference holds the static region directory used to label and
// place clicks geographically.
package reference

import (
	"sort"

	"github.com/tomtom215/clickscope/internal/models"
)

// UnresolvedName labels region code 0 and any code absent from the directory.
const UnresolvedName = "Неопознанный регион"

// RegionInfo is one directory entry.
type RegionInfo struct {
	ID             int8    `json:"region_id"`
	Name           string  `json:"name"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`
	HasCoordinates bool    `json:"has_coordinates"`
}

// Directory resolves region codes. It is immutable after New and safe for
// concurrent readers.
type Directory struct {
	byID map[int8]RegionInfo
	ids  []int8
}

// New builds a directory from the built-in table overlaid with ingested
// region names. A non-empty ingested name replaces the built-in one;
// coordinates always come from the built-in table.
func New(regions []models.Region) *Directory {
	d := &Directory{byID: make(map[int8]RegionInfo, len(builtinRegions)+len(regions))}
	for _, r := range builtinRegions {
		d.byID[r.ID] = r
	}
	for _, r := range regions {
		if r.Name == "" {
			continue
		}
		info := d.byID[r.ID]
		info.ID = r.ID
		info.Name = r.Name
		d.byID[r.ID] = info
	}

	d.ids = make([]int8, 0, len(d.byID))
	for id := range d.byID {
		d.ids = append(d.ids, id)
	}
	sort.Slice(d.ids, func(i, j int) bool { return d.ids[i] < d.ids[j] })
	return d
}

// Lookup returns the entry for id.
func (d *Directory) Lookup(id int8) (RegionInfo, bool) {
	info, ok := d.byID[id]
	return info, ok
}

// Name returns the display name for id, or UnresolvedName when the code is unknown.
func (d *Directory) Name(id int8) string {
	if info, ok := d.byID[id]; ok && info.Name != "" {
		return info.Name
	}
	return UnresolvedName
}

// Coordinates returns the region's reference point, if it has one.
func (d *Directory) Coordinates(id int8) (lat, lon float64, ok bool) {
	info, found := d.byID[id]
	if !found || !info.HasCoordinates {
		return 0, 0, false
	}
	return info.Latitude, info.Longitude, true
}

// All returns every entry ordered by region code.
func (d *Directory) All() []RegionInfo {
	out := make([]RegionInfo, 0, len(d.ids))
	for _, id := range d.ids {
		out = append(out, d.byID[id])
	}
	return out
}

// Len reports the number of known region codes.
func (d *Directory) Len() int {
	return len(d.ids)
}
