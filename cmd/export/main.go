package main

import (
	"context"
	"flag"
	"log"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/questdb/bar"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/questdb"
)

func main() {
	var (
		date   = flag.String("date", "", "Trading date (YYYYMMDD)")
		venue  = flag.String("venue", "", "Venue whose bars to export")
		symbol = flag.String("symbol", "", "Single symbol to export (default: all discovered)")
	)
	flag.Parse()

	if *date == "" || *venue == "" {
		log.Fatal("missing required flags: -date, -venue")
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

	questdbClient, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		log.Fatalf("Failed to initialize QuestDB client: %v", err)
	}
	defer questdbClient.Close()

	layout := datadir.NewLayout(cfg.Data.Root)
	repository := bar.NewRepository(questdbClient)
	exporter := bar.NewExporter(layout, repository, lg)

	symbols := []string{*symbol}
	if *symbol == "" {
		symbols, err = layout.BarSymbols(*date, *venue)
		if err != nil {
			log.Fatalf("Failed to scan bars folder: %v", err)
		}
	}

	for _, sym := range symbols {
		if _, err := exporter.ExportSymbol(ctx, *date, *venue, sym); err != nil {
			lg.Error(err)
			log.Fatalf("Failed to export bars for %s: %v", sym, err)
		}
	}
}
