// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

// Package pipeline runs one Clickscope batch in a fixed step order:
//
//	ingest_clicks -> ingest_campaigns -> ingest_regions -> aggregate -> report
//
// Each step sees the outputs of the steps before it. The first failing step
// stops the run and is reported as a *StepError; later steps never start.
// There are no retries.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/database"
	"github.com/tomtom215/clickscope/internal/ingest"
	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/metrics"
	"github.com/tomtom215/clickscope/internal/models"
	"github.com/tomtom215/clickscope/internal/persist"
	"github.com/tomtom215/clickscope/internal/reference"
	"github.com/tomtom215/clickscope/internal/report"
	"github.com/tomtom215/clickscope/internal/table"
)

// Step names, also used as log fields and metric labels.
const (
	StepIngestClicks    = "ingest_clicks"
	StepIngestCampaigns = "ingest_campaigns"
	StepIngestRegions   = "ingest_regions"
	StepAggregate       = "aggregate"
	StepReport          = "report"
)

// Steps is the fixed execution order.
var Steps = []string{StepIngestClicks, StepIngestCampaigns, StepIngestRegions, StepAggregate, StepReport}

// StepError identifies the step that stopped the run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Options configures a run. Paths and knobs come from config.Config.
type Options struct {
	ClicksPath    string
	CampaignsPath string
	RegionsPath   string

	// Reader is ingest.ReaderCSV or ingest.ReaderDuckDB.
	Reader string
	Ingest ingest.Options
	Filter ingest.RowFilter

	Analytics analytics.Options

	ReportsDir string
	XLSX       bool
}

// StepResult is the outcome of one executed step.
type StepResult struct {
	Step     string
	Duration time.Duration
	Rows     int
	Err      error
}

// Output collects everything a run produced. After a failure it holds the
// outputs of the steps that finished.
type Output struct {
	RunID     string
	Clicks    []models.Click
	Campaigns []models.Campaign
	Regions   []models.Region
	Directory *reference.Directory
	Results   *analytics.Results
	Dashboard report.Dashboard
	Steps     []StepResult
}

// Pipeline wires ingest, aggregation and reporting for one run.
type Pipeline struct {
	opts      Options
	db        *database.DB
	persister *persist.Persister
	ingestor  *ingest.Ingestor
}

// New creates a pipeline. db is required only for the duckdb reader.
// A nil persister disables caching and artifact writes.
func New(opts Options, db *database.DB, p *persist.Persister) *Pipeline {
	if opts.Reader == "" {
		opts.Reader = ingest.ReaderCSV
	}
	return &Pipeline{
		opts:      opts,
		db:        db,
		persister: p,
		ingestor:  ingest.New(opts.Ingest),
	}
}

type step struct {
	name string
	run  func(ctx context.Context, out *Output) (int, error)
}

// Run executes every step in order. ctx should carry a run ID
// (logging.ContextWithRunID); one is generated otherwise.
func (p *Pipeline) Run(ctx context.Context) (*Output, error) {
	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewRunID(ctx)
	}
	out := &Output{RunID: logging.RunIDFromContext(ctx)}
	log := logging.Ctx(ctx)

	steps := []step{
		{StepIngestClicks, p.ingestClicks},
		{StepIngestCampaigns, p.ingestCampaigns},
		{StepIngestRegions, p.ingestRegions},
		{StepAggregate, p.aggregate},
		{StepReport, p.report},
	}

	start := time.Now()
	log.Info().Strs("steps", Steps).Msg("Pipeline started")

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return out, &StepError{Step: s.name, Err: err}
		}

		stepCtx := logging.ContextWithStep(ctx, s.name)
		stepLog := logging.Ctx(stepCtx)
		stepLog.Info().Msg("Step started")

		stepStart := time.Now()
		rows, err := s.run(stepCtx, out)
		d := time.Since(stepStart)

		metrics.RecordPipelineStep(s.name, d, err)
		out.Steps = append(out.Steps, StepResult{Step: s.name, Duration: d, Rows: rows, Err: err})

		if err != nil {
			stepLog.Error().Err(err).Dur("duration", d).Msg("Step failed, aborting pipeline")
			return out, &StepError{Step: s.name, Err: err}
		}
		stepLog.Info().Int("rows", rows).Dur("duration", d).Msg("Step finished")
	}

	log.Info().Dur("duration", time.Since(start)).Msg("Pipeline finished")
	return out, nil
}

// ingestSource runs one ingest through the cache. With caching off it reads
// the source directly.
func ingestSource[T any](ctx context.Context, p *Pipeline, path, artifact string, codec table.Codec[T], src ingest.Source[T]) ([]T, error) {
	compute := func(ctx context.Context) ([]T, error) {
		r, err := ingest.OpenReader(ctx, p.opts.Reader, path, p.db)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := r.Close(); cerr != nil {
				logging.Ctx(ctx).Warn().Err(cerr).Str("path", path).Msg("Failed to close reader")
			}
		}()

		res, err := ingest.Run(ctx, p.ingestor, r, src)
		if err != nil {
			return nil, err
		}
		return res.Records, nil
	}

	if p.persister == nil {
		return compute(ctx)
	}
	return persist.Cached(ctx, p.persister, artifact, codec, compute)
}

func (p *Pipeline) ingestClicks(ctx context.Context, out *Output) (int, error) {
	clicks, err := ingestSource(ctx, p, p.opts.ClicksPath, ingest.ArtifactClicks, ingest.ClickCodec, ingest.ClicksSource(p.opts.Filter))
	if err != nil {
		return 0, err
	}
	out.Clicks = clicks
	return len(clicks), nil
}

func (p *Pipeline) ingestCampaigns(ctx context.Context, out *Output) (int, error) {
	campaigns, err := ingestSource(ctx, p, p.opts.CampaignsPath, ingest.ArtifactCampaigns, ingest.CampaignCodec, ingest.CampaignsSource())
	if err != nil {
		return 0, err
	}
	out.Campaigns = campaigns
	return len(campaigns), nil
}

// ingestRegions also builds the region directory: built-in names overlaid by
// the ingested table.
func (p *Pipeline) ingestRegions(ctx context.Context, out *Output) (int, error) {
	regions, err := ingestSource(ctx, p, p.opts.RegionsPath, ingest.ArtifactRegions, ingest.RegionCodec, ingest.RegionsSource())
	if err != nil {
		return 0, err
	}
	out.Regions = regions
	out.Directory = reference.New(regions)
	logging.Ctx(ctx).Debug().Int("directory_size", out.Directory.Len()).Msg("Region directory ready")
	return len(regions), nil
}

func (p *Pipeline) aggregate(ctx context.Context, out *Output) (int, error) {
	engine := analytics.NewEngine(p.opts.Analytics, p.persister)
	res, err := engine.Run(ctx, analytics.Inputs{
		Clicks:    out.Clicks,
		Campaigns: out.Campaigns,
		Regions:   out.Directory,
	})
	if err != nil {
		return 0, err
	}
	out.Results = res
	return res.JoinedRows, nil
}

// report writes the static artifacts, logs the summaries and lays out the
// dashboard. Artifact failures are collected so one bad file does not hide
// another.
func (p *Pipeline) report(ctx context.Context, out *Output) (int, error) {
	res := out.Results
	topN := p.opts.Analytics.TopN
	if topN < 1 {
		topN = analytics.DefaultTopN
	}

	var errs []error
	written := 0
	if p.opts.XLSX {
		path := filepath.Join(p.opts.ReportsDir, report.WorkbookFile)
		if err := report.NewWorkbookWriter(topN).Write(ctx, path, res); err != nil {
			errs = append(errs, fmt.Errorf("write workbook: %w", err))
		} else {
			written++
		}
	}
	if err := report.WriteResponseStats(ctx, filepath.Join(p.opts.ReportsDir, report.ResponseStatsFile), res.ResponseStats); err != nil {
		errs = append(errs, fmt.Errorf("write response stats: %w", err))
	} else {
		written++
	}

	report.LogSummaries(ctx, res, analytics.LeadersPerMetric)
	out.Dashboard = report.BuildDashboard(res, topN, out.RunID)

	return written, errors.Join(errs...)
}
