package main

import (
	"context"
	"flag"
	"log"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/app/pipeline"
	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func main() {
	var (
		date   = flag.String("date", "", "Trading date (YYYYMMDD)")
		levels = flag.Int("levels", recordv1.BookLevels, "Price levels per snapshot side")
	)
	flag.Parse()

	if *date == "" {
		log.Fatal("missing required flag: -date")
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	layout := datadir.NewLayout(cfg.Data.Root)
	batch := pipeline.NewBatch(layout, cfg.Pipeline, *levels, lg)
	runner := pipeline.NewRunner(lg)

	lg.Info("pipeline starting",
		logger.Field{Key: "run_id", Value: runner.RunID()},
		logger.Field{Key: "date", Value: *date},
	)
	if err := runner.Run(ctx, batch.Stages(*date)...); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
}
