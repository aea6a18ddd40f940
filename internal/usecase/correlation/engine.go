package correlation

import (
	"bufio"
	"context"
	"math"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// MinSamples is the minimum paired sample count for a per-kind correlation
// to be considered.
const MinSamples = 10

// SeriesKind identifies one of the seven bar series a symbol is scored on.
type SeriesKind struct {
	Name    string
	IsFills bool
}

// SeriesKinds returns the seven scored bar series in weighting order.
func SeriesKinds() []SeriesKind {
	return []SeriesKind{
		{Name: "fills_bars", IsFills: true},
		{Name: "bid_bars_L1"},
		{Name: "ask_bars_L1"},
		{Name: "bid_bars_L2"},
		{Name: "ask_bars_L2"},
		{Name: "bid_bars_L3"},
		{Name: "ask_bars_L3"},
	}
}

// PairResult is the overall correlation of one symbol pair, rounded to four
// decimal places.
type PairResult struct {
	Symbol1 string
	Symbol2 string
	Overall float64
}

// Engine computes overall correlations over every pair of validated symbols.
// Pairs are independent units of work and run on a bounded worker pool.
type Engine struct {
	pathFor func(symbol string, kind SeriesKind) string
	cache   *BarCache
	workers int
	logger  logger.Interface
}

// NewEngine creates an Engine. pathFor resolves the bar file for a symbol
// and series kind.
func NewEngine(pathFor func(string, SeriesKind) string, cache *BarCache, workers int, log logger.Interface) *Engine {
	return &Engine{
		pathFor: pathFor,
		cache:   cache,
		workers: workers,
		logger:  log,
	}
}

// ValidSymbols filters symbols to those whose seven bar files all hold at
// least MinSamples bars. A symbol with any short or missing file would
// produce unreliable coefficients for every pair it appears in.
func (e *Engine) ValidSymbols(symbols []string) []string {
	var valid []string
	for _, symbol := range symbols {
		if e.symbolValid(symbol) {
			valid = append(valid, symbol)
		} else {
			e.logger.Warn("symbol skipped: insufficient bar data",
				logger.Field{Key: "symbol", Value: symbol},
			)
		}
	}
	return valid
}

func (e *Engine) symbolValid(symbol string) bool {
	for _, kind := range SeriesKinds() {
		closes, err := e.loadCloses(symbol, kind)
		if err != nil || len(closes) < MinSamples {
			return false
		}
	}
	return true
}

// ComputeAll scores every unordered pair of the given symbols and returns
// the results sorted by symbol pair. Pairs without a single defined per-kind
// correlation are omitted.
func (e *Engine) ComputeAll(ctx context.Context, symbols []string) ([]PairResult, error) {
	var (
		mu      sync.Mutex
		results []PairResult
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)

	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			sym1, sym2 := symbols[i], symbols[j]
			group.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				overall, ok := e.computePair(sym1, sym2)
				if !ok {
					e.logger.Warn("pair skipped: no defined correlations",
						logger.Field{Key: "symbol1", Value: sym1},
						logger.Field{Key: "symbol2", Value: sym2},
					)
					return nil
				}
				mu.Lock()
				results = append(results, PairResult{Symbol1: sym1, Symbol2: sym2, Overall: overall})
				mu.Unlock()
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Symbol1 != results[j].Symbol1 {
			return results[i].Symbol1 < results[j].Symbol1
		}
		return results[i].Symbol2 < results[j].Symbol2
	})
	return results, nil
}

// computePair averages the defined per-kind correlations with equal weights.
func (e *Engine) computePair(sym1, sym2 string) (float64, bool) {
	const weight = 0.125

	var (
		weightedSum float64
		totalWeight float64
	)
	for _, kind := range SeriesKinds() {
		coeff, ok := e.kindCorrelation(sym1, sym2, kind)
		if !ok {
			continue
		}
		weightedSum += coeff * weight
		totalWeight += weight
	}
	if totalWeight < varianceEpsilon {
		return 0, false
	}
	overall := weightedSum / totalWeight
	return math.Round(overall*10000) / 10000, true
}

func (e *Engine) kindCorrelation(sym1, sym2 string, kind SeriesKind) (float64, bool) {
	closes1, err := e.loadCloses(sym1, kind)
	if err != nil {
		return 0, false
	}
	closes2, err := e.loadCloses(sym2, kind)
	if err != nil {
		return 0, false
	}
	if len(closes1) == 0 || len(closes2) == 0 {
		return 0, false
	}

	trimmed1, trimmed2 := TrimToSameLength(closes1, closes2)
	if len(trimmed1) < MinSamples || len(trimmed2) < MinSamples {
		return 0, false
	}
	return Pearson(trimmed1, trimmed2)
}

// loadCloses reads one bar file's closing prices through the shared cache.
// A missing file yields an empty series, matching how a symbol can trade on
// fewer venues than others.
func (e *Engine) loadCloses(symbol string, kind SeriesKind) ([]float64, error) {
	path := e.pathFor(symbol, kind)
	return e.cache.Get(path, func(path string) ([]float64, error) {
		in, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, err
		}
		defer in.Close()

		reader := bufio.NewReader(in)
		if _, err := recordv1.ReadHeader(reader); err != nil {
			return nil, nil
		}

		if kind.IsFills {
			bars, err := recordv1.ReadFillsBars(reader)
			if err != nil {
				return nil, err
			}
			closes := make([]float64, len(bars))
			for i, bar := range bars {
				closes[i] = bar.Close
			}
			return closes, nil
		}

		bars, err := recordv1.ReadBars(reader)
		if err != nil {
			return nil, err
		}
		closes := make([]float64, len(bars))
		for i, bar := range bars {
			closes[i] = bar.Close
		}
		return closes, nil
	})
}
