package main

import (
	"flag"
	"log"
	"path/filepath"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/impact"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func main() {
	var (
		date   = flag.String("date", "", "Trading date (YYYYMMDD)")
		venue  = flag.String("venue", "", "Venue of the input file (default: use the merged stream)")
		symbol = flag.String("symbol", "", "Symbol to evaluate")
		qty    = flag.String("qty", "", "Target execution quantity")
	)
	flag.Parse()

	if *date == "" || *symbol == "" || *qty == "" {
		log.Fatal("missing required flags: -date, -symbol, -qty")
	}

	targetQty, err := impact.ValidateTargetQuantity(*qty)
	if err != nil {
		log.Fatalf("Invalid target quantity: %v", err)
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
	processor := impact.NewProcessor(targetQty, lg)

	var input string
	if *venue != "" {
		input = layout.BookFilePath(*date, *venue, *symbol, recordv1.KindTops)
	} else {
		input = layout.MergedFilePath(*date, *symbol, recordv1.KindTops)
	}
	output := datadir.ImpactResultPath(input, targetQty)
	if err := datadir.EnsureDir(filepath.Dir(output)); err != nil {
		log.Fatalf("Failed to create impactbase folder: %v", err)
	}

	if *venue != "" {
		_, err = processor.ProcessVenueFile(input, output)
	} else {
		_, err = processor.ProcessMergedFile(input, output)
	}
	if err != nil {
		lg.Error(err)
		log.Fatalf("Failed to compute execution results: %v", err)
	}
}
