package main

import (
	"flag"
	"log"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/bars"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/interval"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func main() {
	var (
		date  = flag.String("date", "", "Trading date (YYYYMMDD)")
		venue = flag.String("venue", "", "Single venue to process (default: all discovered)")
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
	processor := bars.NewProcessor(interval.OneSecond, lg)

	venues := []string{*venue}
	if *venue == "" {
		venues, err = layout.VenueFolders(*date)
		if err != nil {
			log.Fatalf("Failed to scan date folder: %v", err)
		}
	}

	for _, v := range venues {
		if err := datadir.EnsureDir(layout.BarsDir(*date, v)); err != nil {
			log.Fatalf("Failed to create bars folder: %v", err)
		}
		venueList := []string{v}

		for _, sym := range layout.Symbols(*date, venueList, recordv1.KindTops) {
			input := layout.BookFilePath(*date, v, sym, recordv1.KindTops)
			_, err := processor.ProcessTopsFile(input, func(series bars.Series) string {
				return layout.BarFilePath(*date, v, sym, series.Name())
			})
			if err != nil {
				lg.Error(err)
				log.Fatalf("Failed to aggregate tops bars for %s %s: %v", v, sym, err)
			}
		}

		for _, sym := range layout.Symbols(*date, venueList, recordv1.KindFills) {
			input := layout.BookFilePath(*date, v, sym, recordv1.KindFills)
			output := layout.BarFilePath(*date, v, sym, "fills_bars")
			if _, err := processor.ProcessFillsFile(input, output); err != nil {
				lg.Error(err)
				log.Fatalf("Failed to aggregate fills bars for %s %s: %v", v, sym, err)
			}
		}
	}
}
