package merge

import (
	"bufio"
	stderrors "errors"
	"io"
	"math/rand"
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

func topsWithTs(ts uint64) recordv1.Tops {
	return recordv1.Tops{
		Ts:    ts,
		Seqno: ts,
		Bids:  [recordv1.BookLevels]recordv1.Level{{Price: 100_000_000_000, Qty: 10}},
		Asks:  [recordv1.BookLevels]recordv1.Level{{Price: 101_000_000_000, Qty: 10}},
	}
}

func writeTopsFile(t *testing.T, path string, feedID uint64, timestamps []uint64, trailing []byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	header := recordv1.Header{
		FeedID:    feedID,
		DateInt:   20250102,
		Count:     uint32(len(timestamps)),
		SymbolIdx: 7,
	}
	_, err = f.Write(recordv1.EncodeHeader(header))
	require.NoError(t, err)
	for _, ts := range timestamps {
		_, err = f.Write(recordv1.EncodeTops(topsWithTs(ts)))
		require.NoError(t, err)
	}
	if trailing != nil {
		_, err = f.Write(trailing)
		require.NoError(t, err)
	}
}

func readMerged(t *testing.T, path string) (recordv1.Header, []recordv1.TaggedTops) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := bufio.NewReader(f)
	header, err := recordv1.ReadHeader(r)
	require.NoError(t, err)

	var entries []recordv1.TaggedTops
	for {
		entry, err := recordv1.ReadTaggedTops(r)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	return header, entries
}

func TestMergeOrdersByTimestampThenFeed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")
	out := filepath.Join(dir, "merged.bin")

	// Timestamp 30 appears in both sources; the lower feed id must win.
	writeTopsFile(t, a, 2, []uint64{10, 30, 50}, nil)
	writeTopsFile(t, b, 1, []uint64{20, 30, 40}, nil)

	engine := NewEngine(recordv1.KindTops, newTestLogger(t))
	result, err := engine.Merge([]string{a, b}, out)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), result.Records)
	assert.Equal(t, 2, result.SourcesMerged)

	header, entries := readMerged(t, out)
	assert.Equal(t, uint32(6), header.Count)
	// Header template comes from the first readable source.
	assert.Equal(t, uint64(2), header.FeedID)
	assert.Equal(t, uint32(20250102), header.DateInt)

	var gotTs []uint64
	var gotFeeds []uint64
	for _, e := range entries {
		gotTs = append(gotTs, e.Tops.Ts)
		gotFeeds = append(gotFeeds, e.FeedID)
	}
	assert.Equal(t, []uint64{10, 20, 30, 30, 40, 50}, gotTs)
	assert.Equal(t, []uint64{2, 1, 1, 2, 1, 2}, gotFeeds)
}

func TestMergeSkipsMissingAndUndersizedSources(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bin")
	tiny := filepath.Join(dir, "tiny.bin")
	out := filepath.Join(dir, "merged.bin")

	writeTopsFile(t, good, 5, []uint64{1, 2}, nil)
	require.NoError(t, os.WriteFile(tiny, make([]byte, recordv1.HeaderSize-4), 0o644))

	engine := NewEngine(recordv1.KindTops, newTestLogger(t))
	result, err := engine.Merge([]string{filepath.Join(dir, "absent.bin"), tiny, good}, out)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SourcesSkipped)
	assert.Equal(t, uint32(2), result.Records)

	_, entries := readMerged(t, out)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(5), entries[0].FeedID)
}

func TestMergeLeavesNoOutputWhenNothingMerged(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.bin")
	out := filepath.Join(dir, "merged.bin")

	// Header only, zero records.
	writeTopsFile(t, empty, 1, nil, nil)

	engine := NewEngine(recordv1.KindTops, newTestLogger(t))
	result, err := engine.Merge([]string{empty}, out)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), result.Records)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMergeDropsTruncatedTail(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "merged.bin")

	writeTopsFile(t, in, 9, []uint64{1, 2}, make([]byte, recordv1.TopsSize/2))

	engine := NewEngine(recordv1.KindTops, newTestLogger(t))
	result, err := engine.Merge([]string{in}, out)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), result.Records)

	header, entries := readMerged(t, out)
	assert.Equal(t, uint32(2), header.Count)
	assert.Len(t, entries, 2)
}

type failingReader struct {
	err error
}

func (r failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestSourceNextLogsReadErrors(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "merge.log")
	lg, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.WarnLevel),
		logger.WithOutputPaths([]string{logPath}),
	)
	require.NoError(t, err)

	diskErr := stderrors.New("read: input/output error")
	src := &source{
		path:   "arca/books/ARCA.book_tops.MSFT.bin",
		reader: bufio.NewReader(failingReader{err: diskErr}),
	}

	_, err = src.next(recordv1.TopsSize, lg)
	assert.ErrorIs(t, err, diskErr)

	require.NoError(t, lg.Sync())
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ending stream on read error")
	assert.Contains(t, string(data), src.path)
}

func TestMergeRandomizedStreams(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(1))

	const numSources = 5
	var inputs []string
	var total int
	perFeed := make(map[uint64][]uint64)
	for i := 0; i < numSources; i++ {
		n := rng.Intn(200)
		timestamps := make([]uint64, n)
		ts := uint64(0)
		for j := range timestamps {
			ts += uint64(rng.Intn(3)) // duplicates within and across sources
			timestamps[j] = ts
		}
		feedID := uint64(i + 1)
		perFeed[feedID] = timestamps
		total += n

		path := filepath.Join(dir, "src"+string(rune('a'+i))+".bin")
		writeTopsFile(t, path, feedID, timestamps, nil)
		inputs = append(inputs, path)
	}

	out := filepath.Join(dir, "merged.bin")
	engine := NewEngine(recordv1.KindTops, newTestLogger(t))
	result, err := engine.Merge(inputs, out)
	require.NoError(t, err)
	require.Equal(t, uint32(total), result.Records)

	header, entries := readMerged(t, out)
	assert.Equal(t, uint32(total), header.Count)

	replayed := make(map[uint64][]uint64)
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Tops.Ts == cur.Tops.Ts {
			assert.LessOrEqual(t, prev.FeedID, cur.FeedID)
		} else {
			assert.Less(t, prev.Tops.Ts, cur.Tops.Ts)
		}
	}
	for _, e := range entries {
		replayed[e.FeedID] = append(replayed[e.FeedID], e.Tops.Ts)
	}
	// Each source's records survive as an intact subsequence.
	for feedID, want := range perFeed {
		if len(want) == 0 {
			assert.Empty(t, replayed[feedID])
			continue
		}
		assert.Equal(t, want, replayed[feedID])
	}
}
