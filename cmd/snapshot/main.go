package main

import (
	"flag"
	"log"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/book"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func main() {
	var (
		date   = flag.String("date", "", "Trading date (YYYYMMDD)")
		symbol = flag.String("symbol", "", "Single symbol to process (default: all discovered)")
		levels = flag.Int("levels", recordv1.BookLevels, "Price levels per snapshot side")
	)
	flag.Parse()

	if *date == "" {
		log.Fatal("missing required flag: -date")
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

	layout := datadir.NewLayout(cfg.Data.Root)
	processor := book.NewProcessor(*levels, lg)

	symbols := []string{*symbol}
	if *symbol == "" {
		venues, err := layout.VenueFolders(*date)
		if err != nil {
			log.Fatalf("Failed to scan date folder: %v", err)
		}
		symbols = layout.Symbols(*date, venues, recordv1.KindTops)
	}

	for _, sym := range symbols {
		input := layout.MergedFilePath(*date, sym, recordv1.KindTops)
		output := layout.SnapshotFilePath(*date, sym)
		if _, err := processor.Process(input, output); err != nil {
			lg.Error(err)
			log.Fatalf("Failed to build snapshots for %s: %v", sym, err)
		}
	}
}
