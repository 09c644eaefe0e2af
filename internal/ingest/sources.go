// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package ingest

import (
	"context"
	"sort"
	"time"

	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/table"
)

// Source names, also used as metric labels.
const (
	SourceClicks    = "clicks"
	SourceCampaigns = "campaign"
	SourceRegions   = "regions"
)

// Cache artifact names for the processed raw tables.
const (
	ArtifactClicks    = "clicks_processed"
	ArtifactCampaigns = "campaign_processed"
	ArtifactRegions   = "regions_processed"
)

// ClicksSchema is the click log layout.
var ClicksSchema = Schema{
	{Name: "uid", Type: TypeString, Required: true},
	{Name: "member_id", Type: TypeInt32},
	{Name: "campaign_id", Type: TypeInt32, Required: true},
	{Name: "region", Type: TypeInt8},
	{Name: "OS", Type: TypeCategory},
	{Name: "browser", Type: TypeCategory},
	{Name: "device", Type: TypeCategory},
	{Name: "language", Type: TypeString},
	{Name: "click_time", Type: TypeTimestamp, Required: true},
	{Name: "click_date", Type: TypeTimestamp},
}

// CampaignsSchema is the campaign metadata layout.
var CampaignsSchema = Schema{
	{Name: "id", Type: TypeInt32, Required: true},
	{Name: "name", Type: TypeString},
	{Name: "created_at", Type: TypeEpochOrTimestamp, Required: true},
}

// RegionsSchema is the region name layout.
var RegionsSchema = Schema{
	{Name: "region_id", Type: TypeInt8, Required: true},
	{Name: "name", Type: TypeString},
}

// ClicksSource ingests the click log through filter. A click without a
// click_date gets the UTC day of its click_time.
func ClicksSource(filter RowFilter) Source[models.Click] {
	return Source[models.Click]{
		Name:   SourceClicks,
		Schema: ClicksSchema,
		Filter: filter,
		Build: func(r Record) (models.Click, error) {
			c := models.Click{
				UID:        r.String("uid"),
				MemberID:   r.Int32("member_id"),
				CampaignID: r.Int32("campaign_id"),
				Region:     r.Int8("region"),
				OS:         r.String("OS"),
				Browser:    r.String("browser"),
				Device:     r.String("device"),
				Language:   r.String("language"),
				ClickTime:  r.Time("click_time"),
				ClickDate:  r.Time("click_date"),
			}
			if c.ClickDate.IsZero() {
				c.ClickDate = c.ClickTime.Truncate(24 * time.Hour)
			}
			return c, nil
		},
		Finish: logTopRegions,
	}
}

// CampaignsSource ingests campaign metadata.
func CampaignsSource() Source[models.Campaign] {
	return Source[models.Campaign]{
		Name:   SourceCampaigns,
		Schema: CampaignsSchema,
		Build: func(r Record) (models.Campaign, error) {
			return models.Campaign{
				ID:        r.Int32("id"),
				Name:      r.String("name"),
				CreatedAt: r.Time("created_at"),
			}, nil
		},
	}
}

// RegionsSource ingests region display names.
func RegionsSource() Source[models.Region] {
	return Source[models.Region]{
		Name:   SourceRegions,
		Schema: RegionsSchema,
		Build: func(r Record) (models.Region, error) {
			return models.Region{ID: r.Int8("region_id"), Name: r.String("name")}, nil
		},
	}
}

// RegionCount is a click tally for one region code.
type RegionCount struct {
	Region int8
	Clicks int
}

// TopRegionCounts tallies clicks per region code and returns the n largest,
// ties broken by lower region code.
func TopRegionCounts(clicks []models.Click, n int) []RegionCount {
	counts := make(map[int8]int)
	for i := range clicks {
		counts[clicks[i].Region]++
	}
	out := make([]RegionCount, 0, len(counts))
	for r, c := range counts {
		out = append(out, RegionCount{Region: r, Clicks: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return out[i].Region < out[j].Region
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func logTopRegions(ctx context.Context, clicks []models.Click) {
	log := logging.Ctx(ctx)
	for i, rc := range TopRegionCounts(clicks, 5) {
		log.Info().
			Int("rank", i+1).
			Int("region", int(rc.Region)).
			Int("clicks", rc.Clicks).
			Msg("Top region")
	}
}

// ClickCodec maps clicks to cache frames.
var ClickCodec = table.Codec[models.Click]{
	Columns: []table.Column{
		{Name: "uid", Kind: table.KindString},
		{Name: "member_id", Kind: table.KindInt},
		{Name: "campaign_id", Kind: table.KindInt},
		{Name: "region", Kind: table.KindInt},
		{Name: "OS", Kind: table.KindString},
		{Name: "browser", Kind: table.KindString},
		{Name: "device", Kind: table.KindString},
		{Name: "language", Kind: table.KindString},
		{Name: "click_time", Kind: table.KindTime},
		{Name: "click_date", Kind: table.KindTime},
	},
	Encode: func(c models.Click) []any {
		return []any{c.UID, c.MemberID, c.CampaignID, c.Region, c.OS, c.Browser, c.Device, c.Language, c.ClickTime, c.ClickDate}
	},
	Decode: func(r table.Row) (models.Click, error) {
		return models.Click{
			UID:        r.String("uid"),
			MemberID:   int32(r.Int("member_id")),
			CampaignID: int32(r.Int("campaign_id")),
			Region:     int8(r.Int("region")),
			OS:         r.String("OS"),
			Browser:    r.String("browser"),
			Device:     r.String("device"),
			Language:   r.String("language"),
			ClickTime:  r.Time("click_time"),
			ClickDate:  r.Time("click_date"),
		}, nil
	},
}

// CampaignCodec maps campaigns to cache frames.
var CampaignCodec = table.Codec[models.Campaign]{
	Columns: []table.Column{
		{Name: "id", Kind: table.KindInt},
		{Name: "name", Kind: table.KindString},
		{Name: "created_at", Kind: table.KindTime},
	},
	Encode: func(c models.Campaign) []any {
		return []any{c.ID, c.Name, c.CreatedAt}
	},
	Decode: func(r table.Row) (models.Campaign, error) {
		return models.Campaign{
			ID:        int32(r.Int("id")),
			Name:      r.String("name"),
			CreatedAt: r.Time("created_at"),
		}, nil
	},
}

// RegionCodec maps regions to cache frames.
var RegionCodec = table.Codec[models.Region]{
	Columns: []table.Column{
		{Name: "region_id", Kind: table.KindInt},
		{Name: "name", Kind: table.KindString},
	},
	Encode: func(r models.Region) []any {
		return []any{r.ID, r.Name}
	},
	Decode: func(r table.Row) (models.Region, error) {
		return models.Region{ID: int8(r.Int("region_id")), Name: r.String("name")}, nil
	},
}
