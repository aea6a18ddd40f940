package main

import (
	"context"
	"flag"
	"log"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/publish"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func main() {
	var (
		date   = flag.String("date", "", "Trading date (YYYYMMDD)")
		symbol = flag.String("symbol", "", "Symbol whose merged stream to publish")
	)
	flag.Parse()

	if *date == "" || *symbol == "" {
		log.Fatal("missing required flags: -date, -symbol")
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

	publisher := publish.NewPublisher(cfg.Kafka, lg)
	defer publisher.Close()

	layout := datadir.NewLayout(cfg.Data.Root)
	replayer := publish.NewReplayer(publisher, lg)

	input := layout.MergedFilePath(*date, *symbol, recordv1.KindTops)
	if _, err := replayer.Replay(ctx, *symbol, input); err != nil {
		lg.Error(err)
		log.Fatalf("Failed to publish merged stream: %v", err)
	}
}
