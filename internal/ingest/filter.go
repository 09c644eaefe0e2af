// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package ingest

import (
	"strings"
)

// RowFilter decides on raw, uncoerced cells whether a row is retained.
type RowFilter interface {
	// Columns names the raw columns Keep receives, in order.
	Columns() []string
	Keep(values []string) bool
}

// ClickFilter retains a click iff its device is on the allow-list (exact
// match) and its browser contains none of the bot keywords, ignoring case.
type ClickFilter struct {
	devices  map[string]struct{}
	keywords []string
}

// NewClickFilter builds a filter. Keywords are matched case-insensitively;
// empty keywords are ignored.
func NewClickFilter(validDevices, botKeywords []string) *ClickFilter {
	f := &ClickFilter{devices: make(map[string]struct{}, len(validDevices))}
	for _, d := range validDevices {
		f.devices[d] = struct{}{}
	}
	for _, k := range botKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			f.keywords = append(f.keywords, k)
		}
	}
	return f
}

// Allow applies the device and bot-signature rules.
func (f *ClickFilter) Allow(device, browser string) bool {
	if _, ok := f.devices[device]; !ok {
		return false
	}
	b := strings.ToLower(browser)
	for _, k := range f.keywords {
		if strings.Contains(b, k) {
			return false
		}
	}
	return true
}

func (f *ClickFilter) Columns() []string {
	return []string{"device", "browser"}
}

func (f *ClickFilter) Keep(values []string) bool {
	return f.Allow(values[0], values[1])
}
