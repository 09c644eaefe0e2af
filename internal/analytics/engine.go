// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/metrics"
	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/persist"
	"github.com/tomtom215/clickscope/internal/reference"
	"github.com/tomtom215/clickscope/internal/table"
)

// Engine defaults.
const (
	DefaultTopN             = 10
	DefaultBestHours        = 3
	DefaultLocalOffsetHours = 3
)

// Options configures an Engine.
type Options struct {
	// Workers bounds how many aggregates run at once. 1 is sequential.
	Workers int

	// TopN sizes the top-region ranking.
	TopN int

	// Window is the early-activity window. Zero means DefaultWindow.
	Window time.Duration

	// LocalOffsetHours converts best hours from UTC to local clock time.
	LocalOffsetHours int
}

// Inputs are the ingested tables the engine aggregates.
type Inputs struct {
	Clicks    []models.Click
	Campaigns []models.Campaign
	Regions   *reference.Directory
}

// Results holds every aggregate of one run.
type Results struct {
	Activity        []models.CampaignActivity
	Daily           []models.PeriodTotal
	Monthly         []models.PeriodTotal
	Hourly          []models.HourlyActivity
	Regional        []models.RegionalActivity
	TopRegions      []models.RegionalActivity
	CadenceDaily    []models.DailyCadence
	CadenceMonthly  []models.MonthlyCadence
	Responses       []models.CampaignResponse
	ResponseStats   models.ResponseStats
	BestHours       []models.BestHour
	RegionReach     []models.RegionReach
	CadenceHeatmap  []models.CadenceHeatCell
	ActivityLevels  []models.ActivityLevelCount
	ActivitySummary []models.MetricSummary
	ActivityLeaders []models.MetricLeader

	JoinedRows    int
	UnmatchedRows int
	Window        time.Duration
}

// Aggregate returns the rows stored under an artifact name.
func (r *Results) Aggregate(name string) (any, bool) {
	switch name {
	case ArtifactActivity:
		return r.Activity, true
	case ArtifactDaily:
		return r.Daily, true
	case ArtifactMonthly:
		return r.Monthly, true
	case ArtifactHourly:
		return r.Hourly, true
	case ArtifactRegional:
		return r.Regional, true
	case ArtifactCadenceDaily:
		return r.CadenceDaily, true
	case ArtifactCadenceMonthly:
		return r.CadenceMonthly, true
	case ArtifactResponse:
		return r.Responses, true
	case ArtifactResponseStats:
		return r.ResponseStats, true
	case ArtifactBestHours:
		return r.BestHours, true
	case ArtifactRegionReach:
		return r.RegionReach, true
	case ArtifactCadenceHeatmap:
		return r.CadenceHeatmap, true
	case ArtifactActivityLevels:
		return r.ActivityLevels, true
	case ArtifactActivitySummary:
		return r.ActivitySummary, true
	case ArtifactActivityLeaders:
		return r.ActivityLeaders, true
	}
	return nil, false
}

// Engine joins clicks to campaigns and computes every aggregate, persisting
// each through the cache.
type Engine struct {
	opts      Options
	persister *persist.Persister
}

// NewEngine creates an engine. A nil persister computes without caching.
func NewEngine(opts Options, p *persist.Persister) *Engine {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.TopN < 1 {
		opts.TopN = DefaultTopN
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	return &Engine{opts: opts, persister: p}
}

// Run computes all aggregates. Independent aggregates run first; aggregates
// derived from them run second. The first failure cancels the rest.
func (e *Engine) Run(ctx context.Context, in Inputs) (*Results, error) {
	log := logging.Ctx(ctx)
	start := time.Now()

	joined := Join(in.Clicks, in.Campaigns)
	res := &Results{
		JoinedRows:    len(joined),
		UnmatchedRows: Unmatched(joined),
		Window:        e.opts.Window,
	}
	log.Info().
		Int("joined_rows", res.JoinedRows).
		Int("unmatched_rows", res.UnmatchedRows).
		Int("campaigns", len(in.Campaigns)).
		Msg("Joined clicks to campaigns")

	response := sync.OnceValues(func() ([]models.CampaignResponse, models.ResponseStats) {
		return ResponseLatency(in.Campaigns, in.Clicks)
	})
	cadence := sync.OnceValues(func() ([]models.DailyCadence, []models.MonthlyCadence) {
		return Cadence(in.Campaigns)
	})

	pool := pond.NewPool(e.opts.Workers)
	defer pool.StopAndWait()

	// Phase one: aggregates over the inputs.
	var stats []models.ResponseStats
	err := e.phase(ctx, pool,
		task(e, ArtifactActivity, activityCodec, &res.Activity, func() []models.CampaignActivity {
			return FirstWindowActivity(joined, e.opts.Window)
		}),
		task(e, ArtifactDaily, periodCodec, &res.Daily, func() []models.PeriodTotal {
			return DailyTotals(joined)
		}),
		task(e, ArtifactMonthly, periodCodec, &res.Monthly, func() []models.PeriodTotal {
			return MonthlyTotals(joined)
		}),
		task(e, ArtifactHourly, hourlyCodec, &res.Hourly, func() []models.HourlyActivity {
			return HourlyActivity(joined)
		}),
		task(e, ArtifactRegional, regionalCodec, &res.Regional, func() []models.RegionalActivity {
			return RegionalActivity(joined, in.Regions)
		}),
		task(e, ArtifactRegionReach, reachCodec, &res.RegionReach, func() []models.RegionReach {
			return RegionReach(joined, in.Regions)
		}),
		task(e, ArtifactCadenceDaily, dailyCadenceCodec, &res.CadenceDaily, func() []models.DailyCadence {
			daily, _ := cadence()
			return daily
		}),
		task(e, ArtifactCadenceMonthly, monthlyCadenceCodec, &res.CadenceMonthly, func() []models.MonthlyCadence {
			_, monthly := cadence()
			return monthly
		}),
		task(e, ArtifactResponse, responseCodec, &res.Responses, func() []models.CampaignResponse {
			rows, _ := response()
			return rows
		}),
		task(e, ArtifactResponseStats, responseStatsCodec, &stats, func() []models.ResponseStats {
			_, s := response()
			return []models.ResponseStats{s}
		}),
	)
	if err != nil {
		return nil, err
	}
	if len(stats) > 0 {
		res.ResponseStats = stats[0]
	}
	res.TopRegions = TopRegions(res.Regional, e.opts.TopN)

	// Phase two: aggregates derived from phase one.
	err = e.phase(ctx, pool,
		task(e, ArtifactBestHours, bestHourCodec, &res.BestHours, func() []models.BestHour {
			return BestHours(res.Hourly, DefaultBestHours, e.opts.LocalOffsetHours)
		}),
		task(e, ArtifactCadenceHeatmap, heatCodec, &res.CadenceHeatmap, func() []models.CadenceHeatCell {
			return CadenceHeatmap(res.CadenceDaily)
		}),
		task(e, ArtifactActivityLevels, levelCodec, &res.ActivityLevels, func() []models.ActivityLevelCount {
			return ActivityLevels(res.CadenceDaily)
		}),
		task(e, ArtifactActivitySummary, summaryCodec, &res.ActivitySummary, func() []models.MetricSummary {
			return Summarize(res.Activity)
		}),
		task(e, ArtifactActivityLeaders, leaderCodec, &res.ActivityLeaders, func() []models.MetricLeader {
			return Leaders(res.Activity, LeadersPerMetric)
		}),
	)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("aggregates", len(Artifacts)).
		Int("workers", e.opts.Workers).
		Dur("duration", time.Since(start)).
		Msg("Aggregates completed")
	return res, nil
}

type aggregateTask func(ctx context.Context) error

// phase runs tasks on the pool and waits for all of them.
func (e *Engine) phase(ctx context.Context, pool pond.Pool, tasks ...aggregateTask) error {
	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()

	for _, t := range tasks {
		group.SubmitErr(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return t(groupCtx)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		return err
	}
	return ctx.Err()
}

// task binds one aggregate to its artifact and destination.
func task[T any](e *Engine, name string, codec table.Codec[T], dst *[]T, compute func() []T) aggregateTask {
	return func(ctx context.Context) error {
		start := time.Now()
		var (
			rows []T
			err  error
		)
		if e.persister == nil {
			rows = compute()
		} else {
			rows, err = persist.Cached(ctx, e.persister, name, codec, func(context.Context) ([]T, error) {
				return compute(), nil
			})
			if err != nil {
				return fmt.Errorf("aggregate %s: %w", name, err)
			}
		}
		*dst = rows
		metrics.RecordAggregate(name, time.Since(start), len(rows))
		logging.Ctx(ctx).Debug().
			Str("aggregate", name).
			Int("rows", len(rows)).
			Dur("duration", time.Since(start)).
			Msg("Aggregate ready")
		return nil
	}
}
