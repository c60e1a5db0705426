// Package main runs one deduplicated ingestion cycle against the
// configured feed and exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osintlabs/threatlens/internal/ai"
	"github.com/osintlabs/threatlens/internal/config"
	"github.com/osintlabs/threatlens/internal/feed"
	"github.com/osintlabs/threatlens/internal/ingest"
	"github.com/osintlabs/threatlens/internal/store"
	"github.com/osintlabs/threatlens/internal/threat"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	provider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		if !errors.Is(err, ai.ErrNotConfigured) {
			return fmt.Errorf("create AI provider: %w", err)
		}
		slog.Warn("AI engine not configured, new threats will carry fallback analysis")
	}
	aiSvc := ai.NewService(provider, cfg.AI.InferenceTimeout)

	pgStore := store.NewPostgresStore(pool)
	// The ingest CLI skips the Redis cache: one cycle has no reads to
	// serve, and the prioritized TTL expires on its own.
	threatSvc := threat.NewService(pgStore, aiSvc, nil)

	fetcher := feed.NewRSSFetcher(cfg.Ingest.FeedURL)
	ingestor := ingest.NewIngestor(pgStore, fetcher, threatSvc, cfg.Ingest)

	report, err := ingestor.Run(ctx)
	if err != nil {
		return fmt.Errorf("ingestion cycle: %w", err)
	}

	slog.Info("ingestion cycle complete",
		"seen", report.Seen,
		"skipped", report.Skipped,
		"created", report.Created,
	)
	return nil
}
