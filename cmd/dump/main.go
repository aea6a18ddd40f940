package main

import (
	"flag"
	"log"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/dump"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func main() {
	var (
		date   = flag.String("date", "", "Trading date (YYYYMMDD)")
		symbol = flag.String("symbol", "", "Symbol whose merged tops to dump")
	)
	flag.Parse()

	if *date == "" || *symbol == "" {
		log.Fatal("missing required flags: -date, -symbol")
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
	dumper := dump.NewDumper(lg)

	input := layout.MergedFilePath(*date, *symbol, recordv1.KindTops)
	output := layout.MergedCSVPath(*date, *symbol)
	if _, err := dumper.DumpMergedTops(input, output); err != nil {
		lg.Error(err)
		log.Fatalf("Failed to dump merged tops: %v", err)
	}
}
