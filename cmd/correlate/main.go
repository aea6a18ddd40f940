package main

import (
	"context"
	"flag"
	"log"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/correlation"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func main() {
	var (
		date  = flag.String("date", "", "Trading date (YYYYMMDD)")
		venue = flag.String("venue", "", "Venue whose bars folder to correlate")
	)
	flag.Parse()

	if *date == "" || *venue == "" {
		log.Fatal("missing required flags: -date, -venue")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()
	layout := datadir.NewLayout(cfg.Data.Root)

	symbols, err := layout.BarSymbols(*date, *venue)
	if err != nil {
		log.Fatalf("Failed to scan bars folder: %v", err)
	}

	cache := correlation.NewBarCache(cfg.Pipeline.CacheMaxEntries)
	engine := correlation.NewEngine(func(symbol string, kind correlation.SeriesKind) string {
		return layout.BarFilePath(*date, *venue, symbol, kind.Name)
	}, cache, cfg.Pipeline.Workers, lg)

	valid := engine.ValidSymbols(symbols)
	if len(valid) < 2 {
		log.Fatalf("Not enough valid symbols to correlate: %d", len(valid))
	}

	results, err := engine.ComputeAll(ctx, valid)
	if err != nil {
		lg.Error(err)
		log.Fatalf("Failed to compute correlations: %v", err)
	}

	output := layout.CorrelationsCSVPath(*date, *venue)
	if err := correlation.WriteCSV(output, results); err != nil {
		lg.Error(err)
		log.Fatalf("Failed to write correlations CSV: %v", err)
	}

	lg.Info("correlations written",
		logger.Field{Key: "output", Value: output},
		logger.Field{Key: "pairs", Value: len(results)},
	)
}
