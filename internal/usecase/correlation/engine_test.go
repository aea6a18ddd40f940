package correlation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func newTestLogger(t *testing.T) logger.Interface {
	t.Helper()
	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return lg
}

func writeBarSeries(t *testing.T, path string, kind SeriesKind, closes []float64) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	header := recordv1.Header{FeedID: 1, DateInt: 20250102, Count: uint32(len(closes)), SymbolIdx: 1}
	_, err = f.Write(recordv1.EncodeHeader(header))
	require.NoError(t, err)

	for i, c := range closes {
		if kind.IsFills {
			bar := recordv1.FillsBar{
				Bar:    recordv1.Bar{TsSec: uint64(i), Open: c, High: c, Low: c, Close: c},
				Volume: 1,
			}
			_, err = f.Write(recordv1.EncodeFillsBar(bar))
		} else {
			bar := recordv1.Bar{TsSec: uint64(i), Open: c, High: c, Low: c, Close: c}
			_, err = f.Write(recordv1.EncodeBar(bar))
		}
		require.NoError(t, err)
	}
}

func writeSymbolSeries(t *testing.T, dir, symbol string, closes []float64) {
	t.Helper()
	for _, kind := range SeriesKinds() {
		writeBarSeries(t, filepath.Join(dir, fmt.Sprintf("%s.%s.bin", kind.Name, symbol)), kind, closes)
	}
}

func newFileEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	pathFor := func(symbol string, kind SeriesKind) string {
		return filepath.Join(dir, fmt.Sprintf("%s.%s.bin", kind.Name, symbol))
	}
	return NewEngine(pathFor, NewBarCache(64), 2, newTestLogger(t))
}

func TestValidSymbolsRequiresAllSeries(t *testing.T) {
	dir := t.TempDir()

	closes := make([]float64, MinSamples)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	writeSymbolSeries(t, dir, "AAA", closes)

	// BBB misses one series file entirely.
	for _, kind := range SeriesKinds()[1:] {
		writeBarSeries(t, filepath.Join(dir, fmt.Sprintf("%s.%s.bin", kind.Name, "BBB")), kind, closes)
	}

	// CCC has every file but too few samples.
	writeSymbolSeries(t, dir, "CCC", closes[:MinSamples-1])

	engine := newFileEngine(t, dir)
	valid := engine.ValidSymbols([]string{"AAA", "BBB", "CCC"})
	assert.Equal(t, []string{"AAA"}, valid)
}

func TestComputeAllScoresCorrelatedPairs(t *testing.T) {
	dir := t.TempDir()

	base := make([]float64, 16)
	inverse := make([]float64, 16)
	for i := range base {
		base[i] = 100 + float64(i)
		inverse[i] = 100 - float64(i)
	}
	scaled := make([]float64, 16)
	for i, v := range base {
		scaled[i] = 3*v + 7 // perfectly correlated with base
	}

	writeSymbolSeries(t, dir, "AAA", base)
	writeSymbolSeries(t, dir, "BBB", scaled)
	writeSymbolSeries(t, dir, "DDD", inverse)

	engine := newFileEngine(t, dir)
	results, err := engine.ComputeAll(context.Background(), []string{"AAA", "BBB", "DDD"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Sorted by symbol pair.
	assert.Equal(t, "AAA", results[0].Symbol1)
	assert.Equal(t, "BBB", results[0].Symbol2)
	assert.InDelta(t, 1.0, results[0].Overall, 1e-4)

	assert.Equal(t, "AAA", results[1].Symbol1)
	assert.Equal(t, "DDD", results[1].Symbol2)
	assert.InDelta(t, -1.0, results[1].Overall, 1e-4)

	assert.Equal(t, "BBB", results[2].Symbol1)
	assert.Equal(t, "DDD", results[2].Symbol2)
	assert.InDelta(t, -1.0, results[2].Overall, 1e-4)
}

func TestComputeAllSkipsDegeneratePairs(t *testing.T) {
	dir := t.TempDir()

	flat := make([]float64, 16)
	moving := make([]float64, 16)
	for i := range flat {
		flat[i] = 100
		moving[i] = 100 + float64(i)
	}
	writeSymbolSeries(t, dir, "AAA", flat)
	writeSymbolSeries(t, dir, "BBB", moving)

	engine := newFileEngine(t, dir)
	results, err := engine.ComputeAll(context.Background(), []string{"AAA", "BBB"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overall_correlations.csv")
	results := []PairResult{
		{Symbol1: "AAA", Symbol2: "BBB", Overall: 0.9876},
		{Symbol1: "AAA", Symbol2: "CCC", Overall: -0.5},
	}

	require.NoError(t, WriteCSV(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"symbol1,symbol2,overall_correlation\nAAA,BBB,0.9876\nAAA,CCC,-0.5000\n",
		string(data),
	)
}
