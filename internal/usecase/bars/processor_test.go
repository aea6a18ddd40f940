package bars

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/interval"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func newTestLogger(t *testing.T) logger.Interface {
	t.Helper()
	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return lg
}

func readBarFile(t *testing.T, path string) (recordv1.Header, []recordv1.Bar) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := bufio.NewReader(f)
	header, err := recordv1.ReadHeader(r)
	require.NoError(t, err)
	bars, err := recordv1.ReadBars(r)
	require.NoError(t, err)
	return header, bars
}

func TestAllSeries(t *testing.T) {
	series := AllSeries()
	require.Len(t, series, 6)
	assert.Equal(t, "bid_bars_L1", series[0].Name())
	assert.Equal(t, "bid_bars_L3", series[2].Name())
	assert.Equal(t, "ask_bars_L1", series[3].Name())
	assert.Equal(t, "ask_bars_L3", series[5].Name())
}

func TestProcessTopsFileWritesPerSeriesBars(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tops.bin")

	records := []recordv1.Tops{
		{
			Ts: 1_100_000_000, Seqno: 1,
			Bids: [recordv1.BookLevels]recordv1.Level{{Price: 100_000_000_000, Qty: 10}},
			Asks: [recordv1.BookLevels]recordv1.Level{{Price: 101_000_000_000, Qty: 10}},
		},
		{
			Ts: 1_600_000_000, Seqno: 2,
			Bids: [recordv1.BookLevels]recordv1.Level{{Price: 100_500_000_000, Qty: 10}},
			Asks: [recordv1.BookLevels]recordv1.Level{{Price: 100_900_000_000, Qty: 10}},
		},
		{
			Ts: 2_100_000_000, Seqno: 3,
			Bids: [recordv1.BookLevels]recordv1.Level{{Price: 100_200_000_000, Qty: 10}},
			// Ask side goes empty: contributes nothing this second.
			Asks: [recordv1.BookLevels]recordv1.Level{},
		},
	}

	f, err := os.Create(in)
	require.NoError(t, err)
	header := recordv1.Header{FeedID: 4, DateInt: 20250102, Count: uint32(len(records)), SymbolIdx: 2}
	_, err = f.Write(recordv1.EncodeHeader(header))
	require.NoError(t, err)
	for _, rec := range records {
		_, err = f.Write(recordv1.EncodeTops(rec))
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	processor := NewProcessor(interval.OneSecond, newTestLogger(t))
	outputs := make(map[string]string)
	result, err := processor.ProcessTopsFile(in, func(s Series) string {
		path := filepath.Join(dir, s.Name()+".bin")
		outputs[s.Name()] = path
		return path
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), result.RecordsRead)

	bidHeader, bidBars := readBarFile(t, outputs["bid_bars_L1"])
	assert.Equal(t, uint64(4), bidHeader.FeedID)
	assert.Equal(t, uint32(2), bidHeader.Count)
	require.Len(t, bidBars, 2)
	assert.Equal(t, uint64(1), bidBars[0].TsSec)
	assert.InDelta(t, 100.0, bidBars[0].Open, 1e-9)
	assert.InDelta(t, 100.5, bidBars[0].Close, 1e-9)
	assert.InDelta(t, 100.2, bidBars[1].Close, 1e-9)

	// Ask series only saw the first bucket.
	askHeader, askBars := readBarFile(t, outputs["ask_bars_L1"])
	assert.Equal(t, uint32(1), askHeader.Count)
	require.Len(t, askBars, 1)
	assert.InDelta(t, 100.9, askBars[0].Close, 1e-9)

	// Deeper levels never quoted: empty bar files with zero counts.
	l2Header, l2Bars := readBarFile(t, outputs["bid_bars_L2"])
	assert.Equal(t, uint32(0), l2Header.Count)
	assert.Empty(t, l2Bars)
}

func TestProcessFillsFileAccumulatesVolume(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fills.bin")
	out := filepath.Join(dir, "fills_bars.bin")

	fills := []recordv1.Fills{
		{Ts: 1_100_000_000, Seqno: 1, TradePrice: 100_000_000_000, TradeQty: 5},
		{Ts: 1_700_000_000, Seqno: 2, TradePrice: 100_400_000_000, TradeQty: 3},
		{Ts: 2_200_000_000, Seqno: 3, TradePrice: 100_200_000_000, TradeQty: 7},
	}

	f, err := os.Create(in)
	require.NoError(t, err)
	header := recordv1.Header{FeedID: 4, DateInt: 20250102, Count: uint32(len(fills)), SymbolIdx: 2}
	_, err = f.Write(recordv1.EncodeHeader(header))
	require.NoError(t, err)
	for _, rec := range fills {
		_, err = f.Write(recordv1.EncodeFills(rec))
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	processor := NewProcessor(interval.OneSecond, newTestLogger(t))
	result, err := processor.ProcessFillsFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), result.RecordsRead)
	assert.Equal(t, uint32(2), result.BarsWritten)

	fd, err := os.Open(out)
	require.NoError(t, err)
	defer fd.Close()

	r := bufio.NewReader(fd)
	outHeader, err := recordv1.ReadHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), outHeader.Count)

	bars, err := recordv1.ReadFillsBars(r)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, uint64(1), bars[0].TsSec)
	assert.Equal(t, int32(8), bars[0].Volume)
	assert.InDelta(t, 100.4, bars[0].Close, 1e-9)
	assert.Equal(t, int32(7), bars[1].Volume)
}
