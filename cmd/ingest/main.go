package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brfutdata/matchgraph/external/report"
	"github.com/brfutdata/matchgraph/internal/app"
	"github.com/brfutdata/matchgraph/internal/config"
	"github.com/brfutdata/matchgraph/internal/observability"
	"github.com/brfutdata/matchgraph/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stores, err := app.NewStores(cfg)
	if err != nil {
		logger.Error("build stores", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logger.Error("close stores", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := app.NewPipeline(cfg, stores, logger)
	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline run failed", "error", err)
		os.Exit(1)
	}

	writer := report.NewWriter(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	if cfg.ReportPath != "" {
		err = writer.WriteFile(ctx, cfg.ReportPath, result)
	} else {
		err = writer.Write(ctx, os.Stdout, result)
	}
	if err != nil {
		logger.ErrorContext(ctx, "write report failed", "error", err)
		os.Exit(1)
	}

	if err := shutdownTracing(ctx); err != nil {
		logger.Error("shutdown tracing failed", "error", err)
	}

	logger.InfoContext(ctx, "ingestion finished",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"created", result.Created,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"conflicts", result.Conflicts,
		"duration_ms", result.DurationMs,
	)
}
