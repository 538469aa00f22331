package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/learnsphere/socialgraph/internal/db"
	"github.com/learnsphere/socialgraph/pkg/config"
	"github.com/learnsphere/socialgraph/pkg/logging"
	"github.com/learnsphere/socialgraph/pkg/telemetry"
)

// The sweeper is the social graph's janitor: expired blocks and mutes are
// already ignored by reads, so this process just keeps the tables from
// accumulating dead rows, and applies the retention window to consumed
// recommendations.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Social Graph Sweeper")

	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	ticker := time.NewTicker(cfg.Sweeper.Interval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sweep(database, cfg, logger)
	for {
		select {
		case <-ticker.C:
			sweep(database, cfg, logger)
		case <-quit:
			logger.Info("Sweeper exited")
			return
		}
	}
}

func sweep(database *db.DB, cfg *config.Config, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx, span := telemetry.StartSpan(ctx, "sweeper.sweep")
	defer span.End()

	repo := db.NewRepository(database.DB)

	blocks, err := db.NewBlockRepository(repo).DeleteExpired(ctx)
	if err != nil {
		logger.Error("Failed to sweep expired blocks", zap.Error(err))
	}

	mutes, err := db.NewMuteRepository(repo).DeleteExpired(ctx)
	if err != nil {
		logger.Error("Failed to sweep expired mutes", zap.Error(err))
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.Sweeper.ConsumedRetentionDays)
	recs, err := db.NewRecommendationRepository(repo).DeleteConsumedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to sweep consumed recommendations", zap.Error(err))
	}

	logger.Info("Sweep completed",
		zap.Int64("expired_blocks", blocks),
		zap.Int64("expired_mutes", mutes),
		zap.Int64("consumed_recommendations", recs))
}
