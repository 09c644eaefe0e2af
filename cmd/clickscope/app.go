// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package main

import (
	"fmt"
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/tomtom215/clickscope/internal/analytics"
	"github.com/tomtom215/clickscope/internal/api"
	"github.com/tomtom215/clickscope/internal/config"
	"github.com/tomtom215/clickscope/internal/database"
	"github.com/tomtom215/clickscope/internal/ingest"
	"github.com/tomtom215/clickscope/internal/persist"
	"github.com/tomtom215/clickscope/internal/pipeline"
)

// browserWaitTimeout bounds how long the browser opener waits for the listener.
const browserWaitTimeout = 10 * time.Second

// needsDuckDB reports whether any configured component drives the DuckDB engine.
func needsDuckDB(cfg *config.Config) bool {
	return cfg.Ingest.Reader == ingest.ReaderDuckDB ||
		slices.Contains(cfg.Output.Backends, persist.BackendDuckDBParquet)
}

// openManifest opens the BadgerDB manifest, or an in-memory one when no path is set.
func openManifest(cfg *config.Config) (persist.Manifest, error) {
	if cfg.Output.ManifestPath == "" {
		return persist.NewInMemoryManifest(), nil
	}
	m, err := persist.OpenBadgerManifest(cfg.Output.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	return m, nil
}

// newPersister builds the backend chain. db may be nil when no backend needs it.
func newPersister(cfg *config.Config, db *database.DB, manifest persist.Manifest) (*persist.Persister, error) {
	backends, err := persist.BackendsFor(cfg.Output.Backends, db, cfg.Output.Compression)
	if err != nil {
		return nil, err
	}
	return persist.New(persist.Options{
		Dir:        cfg.Output.Dir,
		ReuseCache: cfg.Output.ReuseCache,
	}, backends, manifest)
}

func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		ClicksPath:    cfg.Sources.ClicksPath,
		CampaignsPath: cfg.Sources.CampaignsPath,
		RegionsPath:   cfg.Sources.RegionsPath,
		Reader:        cfg.Ingest.Reader,
		Ingest: ingest.Options{
			ChunkSize: cfg.Ingest.ChunkSize,
			LogEvery:  cfg.Ingest.LogEvery,
		},
		Filter: ingest.NewClickFilter(cfg.Ingest.ValidDevices, cfg.Ingest.BotKeywords),
		Analytics: analytics.Options{
			Workers:          cfg.Analytics.Workers,
			TopN:             cfg.Analytics.TopN,
			Window:           cfg.Analytics.Window,
			LocalOffsetHours: cfg.Analytics.LocalOffsetHours,
		},
		ReportsDir: cfg.Output.ReportsDir,
		XLSX:       cfg.Report.XLSX,
	}
}

func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	if len(cfg.Report.CORSOrigins) > 0 {
		mw.CORSAllowedOrigins = cfg.Report.CORSOrigins
	}
	mw.RateLimitRequests = cfg.Report.RateLimitReqs
	mw.RateLimitWindow = time.Minute
	return mw
}

// dashboardAddr picks the first free port from the configured range.
func dashboardAddr(cfg *config.Config) (addr, url string, err error) {
	port, err := api.FindFreePort(cfg.Report.Host, cfg.Report.PortStart, cfg.Report.PortAttempts)
	if err != nil {
		return "", "", err
	}
	addr = net.JoinHostPort(cfg.Report.Host, strconv.Itoa(port))
	return addr, "http://" + addr + "/", nil
}
