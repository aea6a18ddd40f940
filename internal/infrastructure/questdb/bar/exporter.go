package bar

import (
	"bufio"
	"context"
	"os"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/infrastructure/datadir"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/usecase/bars"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// FillsSeriesName is the series tag of trade-derived bars.
const FillsSeriesName = "fills_bars"

// Exporter loads generated bar files and stores them through a
// BarRepository.
type Exporter struct {
	layout     datadir.Layout
	repository BarRepository
	logger     logger.Interface
}

// NewExporter creates an Exporter.
func NewExporter(layout datadir.Layout, repository BarRepository, log logger.Interface) *Exporter {
	return &Exporter{
		layout:     layout,
		repository: repository,
		logger:     log,
	}
}

// ExportSymbol exports every bar series of one (date, venue, symbol) unit.
// Missing series files are skipped; a symbol need not trade on every venue.
func (e *Exporter) ExportSymbol(ctx context.Context, date, venue, symbol string) (int, error) {
	var rows []*Bar

	for _, series := range bars.AllSeries() {
		path := e.layout.BarFilePath(date, venue, symbol, series.Name())
		records, ok, err := readTopsBars(path)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		for _, rec := range records {
			rows = append(rows, FromRecord(symbol, venue, series.Name(), rec))
		}
	}

	fillsPath := e.layout.BarFilePath(date, venue, symbol, FillsSeriesName)
	fillsRecords, ok, err := readFillsBars(fillsPath)
	if err != nil {
		return 0, err
	}
	if ok {
		for _, rec := range fillsRecords {
			rows = append(rows, FromFillsRecord(symbol, venue, FillsSeriesName, rec))
		}
	}

	if err := e.repository.StoreBatch(ctx, rows); err != nil {
		return 0, err
	}

	e.logger.Info("bars exported",
		logger.Field{Key: "date", Value: date},
		logger.Field{Key: "venue", Value: venue},
		logger.Field{Key: "symbol", Value: symbol},
		logger.Field{Key: "rows", Value: len(rows)},
	)
	return len(rows), nil
}

func readTopsBars(path string) ([]recordv1.Bar, bool, error) {
	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer in.Close()

	reader := bufio.NewReader(in)
	if _, err := recordv1.ReadHeader(reader); err != nil {
		return nil, false, nil
	}
	records, err := recordv1.ReadBars(reader)
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func readFillsBars(path string) ([]recordv1.FillsBar, bool, error) {
	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer in.Close()

	reader := bufio.NewReader(in)
	if _, err := recordv1.ReadHeader(reader); err != nil {
		return nil, false, nil
	}
	records, err := recordv1.ReadFillsBars(reader)
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}
