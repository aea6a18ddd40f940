package book

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	snapshotv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/snapshot/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

func newTestLogger(t *testing.T) logger.Interface {
	t.Helper()
	lg, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return lg
}

func writeMergedTops(t *testing.T, path string, entries []recordv1.TaggedTops, trailing []byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	header := recordv1.Header{FeedID: 1, DateInt: 20250102, Count: uint32(len(entries)), SymbolIdx: 9}
	_, err = f.Write(recordv1.EncodeHeader(header))
	require.NoError(t, err)
	for _, e := range entries {
		_, err = f.Write(recordv1.EncodeTaggedTops(e))
		require.NoError(t, err)
	}
	if trailing != nil {
		_, err = f.Write(trailing)
		require.NoError(t, err)
	}
}

func TestProcessWritesChangedSnapshotsOnly(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "merged.bin")
	out := filepath.Join(dir, "snapshots.bin")

	bids := [recordv1.BookLevels]recordv1.Level{{Price: 100_000_000_000, Qty: 50}}
	asks := [recordv1.BookLevels]recordv1.Level{{Price: 101_000_000_000, Qty: 40}}
	betterAsks := [recordv1.BookLevels]recordv1.Level{{Price: 100_500_000_000, Qty: 10}}

	writeMergedTops(t, in, []recordv1.TaggedTops{
		entryFor(1, 10, bids, asks),
		entryFor(1, 20, bids, asks), // restated, suppressed
		entryFor(2, 30, bids, betterAsks),
	}, nil)

	processor := NewProcessor(recordv1.BookLevels, newTestLogger(t))
	result, err := processor.Process(in, out)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), result.EntriesRead)
	assert.Equal(t, uint32(2), result.SnapshotsWritten)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	r := bufio.NewReader(f)
	header, err := recordv1.ReadHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(ConsolidatedFileFeedID), header.FeedID)
	assert.Equal(t, uint32(20250102), header.DateInt)
	assert.Equal(t, uint32(2), header.Count)
	assert.Equal(t, uint64(9), header.SymbolIdx)

	first, err := snapshotv1.Read(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), first.Ts)
	require.Len(t, first.Asks, 1)
	assert.Equal(t, int64(101_000_000_000), first.Asks[0].Price)

	second, err := snapshotv1.Read(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), second.Ts)
	require.Len(t, second.Asks, 2)
	assert.Equal(t, int64(100_500_000_000), second.Asks[0].Price)

	_, err = snapshotv1.Read(r)
	assert.Equal(t, io.EOF, err)
}

func TestProcessDropsTruncatedTail(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "merged.bin")
	out := filepath.Join(dir, "snapshots.bin")

	bids := [recordv1.BookLevels]recordv1.Level{{Price: 100_000_000_000, Qty: 50}}
	writeMergedTops(t, in, []recordv1.TaggedTops{
		entryFor(1, 10, bids, [recordv1.BookLevels]recordv1.Level{}),
	}, make([]byte, recordv1.TaggedTopsSize/2))

	processor := NewProcessor(recordv1.BookLevels, newTestLogger(t))
	result, err := processor.Process(in, out)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), result.EntriesRead)
	assert.Equal(t, uint32(1), result.SnapshotsWritten)
}

func TestProcessMissingInput(t *testing.T) {
	processor := NewProcessor(recordv1.BookLevels, newTestLogger(t))
	_, err := processor.Process(filepath.Join(t.TempDir(), "absent.bin"), filepath.Join(t.TempDir(), "out.bin"))
	assert.True(t, errors.Is(err, errors.ErrMissingSource))
}
