package main

import (
	"flag"
	"log"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/merge"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func main() {
	var (
		date   = flag.String("date", "", "Trading date (YYYYMMDD)")
		symbol = flag.String("symbol", "", "Single symbol to merge (default: all discovered)")
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
	venues, err := layout.VenueFolders(*date)
	if err != nil {
		lg.Error(err)
		log.Fatalf("Failed to scan date folder: %v", err)
	}
	if err := datadir.EnsureDir(layout.MergedDir(*date)); err != nil {
		log.Fatalf("Failed to create merged folder: %v", err)
	}

	for _, kind := range []recordv1.Kind{recordv1.KindTops, recordv1.KindFills} {
		engine := merge.NewEngine(kind, lg)
		symbols := layout.Symbols(*date, venues, kind)
		if *symbol != "" {
			symbols = []string{*symbol}
		}
		for _, sym := range symbols {
			inputs := make([]string, 0, len(venues))
			for _, venue := range venues {
				inputs = append(inputs, layout.BookFilePath(*date, venue, sym, kind))
			}
			if _, err := engine.Merge(inputs, layout.MergedFilePath(*date, sym, kind)); err != nil {
				lg.Error(err)
				log.Fatalf("Failed to merge %s for %s: %v", kind.MergedName(), sym, err)
			}
		}
	}
}
