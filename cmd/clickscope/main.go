// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/clickscope/internal/api"
	"github.com/tomtom215/clickscope/internal/config"
	"github.com/tomtom215/clickscope/internal/database"
	"github.com/tomtom215/clickscope/internal/logging"
	"github.com/tomtom215/clickscope/internal/pipeline"
	"github.com/tomtom215/clickscope/internal/supervisor"
)

//nolint:gocyclo // Sequential startup with one branch per optional component
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("clicks", cfg.Sources.ClicksPath).
		Str("reader", cfg.Ingest.Reader).
		Strs("backends", cfg.Output.Backends).
		Bool("dashboard", cfg.Report.Dashboard).
		Msg("Configuration loaded")

	var db *database.DB
	if needsDuckDB(cfg) {
		db, err = database.Open(database.Options{Compression: cfg.Output.Compression})
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize DuckDB")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing database")
			}
		}()
	}

	manifest, err := openManifest(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open artifact manifest")
	}
	defer func() {
		if err := manifest.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing manifest")
		}
	}()

	persister, err := newPersister(cfg, db, manifest)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure persistence")
	}

	ctx, cancel := context.WithCancel(logging.ContextWithNewRunID(context.Background()))
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	out, err := pipeline.New(pipelineOptions(cfg), db, persister).Run(ctx)
	if err != nil {
		var stepErr *pipeline.StepError
		if errors.As(err, &stepErr) {
			logging.Error().Str("step", stepErr.Step).Err(stepErr.Err).Msg("Pipeline failed")
		} else {
			logging.Error().Err(err).Msg("Pipeline failed")
		}
		// os.Exit skips deferred closers; release the manifest lock first.
		cancel()
		_ = manifest.Close()
		if db != nil {
			_ = db.Close()
		}
		os.Exit(1)
	}

	if !cfg.Report.Dashboard {
		logging.Info().Str("reports_dir", cfg.Output.ReportsDir).Msg("Reports written, dashboard disabled")
		return
	}

	addr, url, err := dashboardAddr(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Dashboard not started")
		return
	}

	handler := api.NewHandler(out.Dashboard, out.Results, manifest, out.RunID)
	router := api.NewRouter(handler, middlewareConfig(cfg)).SetupChi()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Report.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	server := supervisor.NewDashboardServer(addr, router)
	tree.AddAPIService(supervisor.NewHTTPServerService(server, addr, cfg.Report.ShutdownTimeout))
	if cfg.Report.OpenBrowser {
		tree.AddOpsService(supervisor.NewBrowserService(url, addr, browserWaitTimeout, api.WaitForPort, api.OpenBrowser))
	}

	logging.Info().Str("url", url).Msg("Starting dashboard, press Ctrl+C to stop")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Clickscope stopped")
}
