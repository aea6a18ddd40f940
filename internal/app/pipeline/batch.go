package pipeline

import (
	"context"
	"fmt"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/bars"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/book"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/merge"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/interval"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// Batch builds the standard stage sequence for one trading date: merge the
// per-venue captures per symbol, derive consolidated snapshots from the
// merged tops, and aggregate per-venue bars. Reruns are idempotent; every
// stage rewrites its outputs from scratch.
type Batch struct {
	layout datadir.Layout
	cfg    config.PipelineConfig
	levels int
	logger logger.Interface
}

// NewBatch creates a Batch over one data layout.
func NewBatch(layout datadir.Layout, cfg config.PipelineConfig, levels int, log logger.Interface) *Batch {
	return &Batch{
		layout: layout,
		cfg:    cfg,
		levels: levels,
		logger: log,
	}
}

// Stages returns the date's stage sequence.
func (b *Batch) Stages(date string) []Stage {
	return []Stage{
		StageFunc{StageName: "merge", Fn: func(ctx context.Context) error {
			return b.runMerge(ctx, date)
		}},
		StageFunc{StageName: "snapshot", Fn: func(ctx context.Context) error {
			return b.runSnapshots(ctx, date)
		}},
		StageFunc{StageName: "bars", Fn: func(ctx context.Context) error {
			return b.runBars(ctx, date)
		}},
	}
}

// runMerge merges every symbol's per-venue streams, tops and fills alike.
func (b *Batch) runMerge(ctx context.Context, date string) error {
	venues, err := b.layout.VenueFolders(date)
	if err != nil {
		return err
	}
	if err := datadir.EnsureDir(b.layout.MergedDir(date)); err != nil {
		return err
	}

	var units []Unit
	for _, kind := range []recordv1.Kind{recordv1.KindTops, recordv1.KindFills} {
		engine := merge.NewEngine(kind, b.logger)
		for _, symbol := range b.layout.Symbols(date, venues, kind) {
			inputs := make([]string, 0, len(venues))
			for _, venue := range venues {
				inputs = append(inputs, b.layout.BookFilePath(date, venue, symbol, kind))
			}
			output := b.layout.MergedFilePath(date, symbol, kind)
			units = append(units, Unit{
				Name: fmt.Sprintf("merge %s %s", kind.MergedName(), symbol),
				Run: func(ctx context.Context) error {
					_, err := engine.Merge(inputs, output)
					return err
				},
			})
		}
	}
	return RunUnits(ctx, b.cfg.Workers, units)
}

// runSnapshots derives consolidated snapshot streams from every merged tops
// file of the date. A symbol whose merge produced no output is skipped.
func (b *Batch) runSnapshots(ctx context.Context, date string) error {
	venues, err := b.layout.VenueFolders(date)
	if err != nil {
		return err
	}

	processor := book.NewProcessor(b.levels, b.logger)
	var units []Unit
	for _, symbol := range b.layout.Symbols(date, venues, recordv1.KindTops) {
		input := b.layout.MergedFilePath(date, symbol, recordv1.KindTops)
		output := b.layout.SnapshotFilePath(date, symbol)
		units = append(units, Unit{
			Name: fmt.Sprintf("snapshot %s", symbol),
			Run: func(ctx context.Context) error {
				_, err := processor.Process(input, output)
				if errors.Is(err, errors.ErrMissingSource) {
					b.logger.Warn("no merged tops for symbol",
						logger.Field{Key: "symbol", Value: symbol},
					)
					return nil
				}
				return err
			},
		})
	}
	return RunUnits(ctx, b.cfg.Workers, units)
}

// runBars aggregates each venue's raw captures into bar files.
func (b *Batch) runBars(ctx context.Context, date string) error {
	venues, err := b.layout.VenueFolders(date)
	if err != nil {
		return err
	}

	processor := bars.NewProcessor(interval.OneSecond, b.logger)
	var units []Unit
	for _, venue := range venues {
		if err := datadir.EnsureDir(b.layout.BarsDir(date, venue)); err != nil {
			return err
		}
		venueList := []string{venue}
		for _, symbol := range b.layout.Symbols(date, venueList, recordv1.KindTops) {
			units = append(units, b.topsBarsUnit(processor, date, venue, symbol))
		}
		for _, symbol := range b.layout.Symbols(date, venueList, recordv1.KindFills) {
			units = append(units, b.fillsBarsUnit(processor, date, venue, symbol))
		}
	}
	return RunUnits(ctx, b.cfg.Workers, units)
}

func (b *Batch) topsBarsUnit(processor *bars.Processor, date, venue, symbol string) Unit {
	input := b.layout.BookFilePath(date, venue, symbol, recordv1.KindTops)
	return Unit{
		Name: fmt.Sprintf("bars tops %s %s", venue, symbol),
		Run: func(ctx context.Context) error {
			_, err := processor.ProcessTopsFile(input, func(series bars.Series) string {
				return b.layout.BarFilePath(date, venue, symbol, series.Name())
			})
			return err
		},
	}
}

func (b *Batch) fillsBarsUnit(processor *bars.Processor, date, venue, symbol string) Unit {
	input := b.layout.BookFilePath(date, venue, symbol, recordv1.KindFills)
	output := b.layout.BarFilePath(date, venue, symbol, "fills_bars")
	return Unit{
		Name: fmt.Sprintf("bars fills %s %s", venue, symbol),
		Run: func(ctx context.Context) error {
			_, err := processor.ProcessFillsFile(input, output)
			return err
		},
	}
}
