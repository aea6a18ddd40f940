// Package merge implements the k-way time-ordered merge of per-venue record
// streams into one origin-tagged merged stream.
package merge

import (
	"bufio"
	"container/heap"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// Engine merges N independently time-sorted per-venue streams into a single
// stream ordered by (timestamp, feed id) without loading any stream fully
// into memory.
type Engine struct {
	kind   recordv1.Kind
	logger logger.Interface
}

// Result reports what one merge run produced.
type Result struct {
	Records        uint32
	SourcesMerged  int
	SourcesSkipped int
	Header         recordv1.Header
}

// NewEngine creates a merge engine for one record kind.
func NewEngine(kind recordv1.Kind, log logger.Interface) *Engine {
	return &Engine{
		kind:   kind,
		logger: log,
	}
}

// source is one open per-venue stream positioned past its header.
type source struct {
	path   string
	file   *os.File
	reader *bufio.Reader
	feedID uint64
}

// next reads the source's next whole record into a fresh buffer. A clean end
// of stream returns (nil, io.EOF); a partial trailing record is discarded
// warn-only and also ends the stream. A genuine read failure ends the stream
// too, but is logged so it cannot pass for a short file.
func (s *source) next(size int, log logger.Interface) ([]byte, error) {
	buf := make([]byte, size)
	err := recordv1.ReadRaw(s.reader, buf)
	switch {
	case err == nil:
		return buf, nil
	case err == io.EOF:
		return nil, io.EOF
	case errors.Is(err, errors.ErrTruncatedInput):
		log.Warn("discarding truncated trailing record",
			logger.Field{Key: "path", Value: s.path},
		)
		return nil, io.EOF
	default:
		log.Warn("ending stream on read error",
			logger.Field{Key: "path", Value: s.path},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return nil, err
	}
}

// heapItem is one pending record in the merge frontier.
type heapItem struct {
	ts     uint64
	feedID uint64
	data   []byte
	src    *source
}

// mergeHeap orders the frontier by timestamp with the origin feed id as a
// deterministic secondary key, so equal-timestamp records from different
// venues pop in the same order on every run.
type mergeHeap []heapItem

func (h mergeHeap) Len() int { return len(h) }

func (h mergeHeap) Less(i, j int) bool {
	if h[i].ts != h[j].ts {
		return h[i].ts < h[j].ts
	}
	return h[i].feedID < h[j].feedID
}

func (h mergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *mergeHeap) Push(x any) { *h = append(*h, x.(heapItem)) }

func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Merge streams every readable input into outputPath. Missing or undersized
// inputs are skipped warn-only; an unwritable output is fatal to the run.
// When zero records merge, no output file is left behind.
func (e *Engine) Merge(inputs []string, outputPath string) (Result, error) {
	recordSize := e.kind.Size()

	var (
		result   Result
		sources  []*source
		frontier mergeHeap
		template *recordv1.Header
	)
	defer func() {
		for _, s := range sources {
			s.file.Close()
		}
	}()

	for _, path := range inputs {
		src, header, err := openSource(path, e.logger)
		if err != nil {
			result.SourcesSkipped++
			continue
		}
		if template == nil {
			h := header
			template = &h
		}
		sources = append(sources, src)

		data, err := src.next(recordSize, e.logger)
		if err == nil {
			frontier = append(frontier, heapItem{
				ts:     recordv1.RawTimestamp(data),
				feedID: src.feedID,
				data:   data,
				src:    src,
			})
		}
	}

	result.SourcesMerged = len(sources)
	if len(frontier) == 0 || template == nil {
		e.logger.Warn("no records to merge",
			logger.Field{Key: "output", Value: outputPath},
			logger.Field{Key: "sources_skipped", Value: result.SourcesSkipped},
		)
		return result, nil
	}
	heap.Init(&frontier)

	out, err := os.Create(outputPath)
	if err != nil {
		return result, errors.NewTracer(fmt.Sprintf("open merged output %s", outputPath)).
			Wrap(errors.ErrOutputUnwritable)
	}

	// The real count is unknown until every stream drains; reserve the
	// header slot and rewrite it at the end.
	w := bufio.NewWriter(out)
	if _, err := w.Write(make([]byte, recordv1.HeaderSize)); err != nil {
		out.Close()
		os.Remove(outputPath)
		return result, errors.TracerFromError(err)
	}

	var merged uint32
	feedIDBuf := make([]byte, 8)
	for frontier.Len() > 0 {
		item := heap.Pop(&frontier).(heapItem)

		binary.LittleEndian.PutUint64(feedIDBuf, item.feedID)
		if _, err := w.Write(feedIDBuf); err != nil {
			out.Close()
			os.Remove(outputPath)
			return result, errors.NewTracer("write merged entry").Wrap(errors.ErrOutputUnwritable)
		}
		if _, err := w.Write(item.data); err != nil {
			out.Close()
			os.Remove(outputPath)
			return result, errors.NewTracer("write merged entry").Wrap(errors.ErrOutputUnwritable)
		}
		merged++

		data, err := item.src.next(recordSize, e.logger)
		if err == nil {
			heap.Push(&frontier, heapItem{
				ts:     recordv1.RawTimestamp(data),
				feedID: item.src.feedID,
				data:   data,
				src:    item.src,
			})
		}
	}

	if err := w.Flush(); err != nil {
		out.Close()
		os.Remove(outputPath)
		return result, errors.NewTracer("flush merged output").Wrap(errors.ErrOutputUnwritable)
	}

	if merged == 0 {
		out.Close()
		os.Remove(outputPath)
		return result, nil
	}

	finalHeader := *template
	finalHeader.Count = merged
	if _, err := out.Seek(0, io.SeekStart); err != nil {
		out.Close()
		return result, errors.TracerFromError(err)
	}
	if _, err := out.Write(recordv1.EncodeHeader(finalHeader)); err != nil {
		out.Close()
		return result, errors.NewTracer("rewrite merged header").Wrap(errors.ErrOutputUnwritable)
	}
	if err := out.Close(); err != nil {
		return result, errors.TracerFromError(err)
	}

	result.Records = merged
	result.Header = finalHeader
	e.logger.Info("merged sources",
		logger.Field{Key: "output", Value: outputPath},
		logger.Field{Key: "records", Value: merged},
		logger.Field{Key: "sources", Value: len(sources)},
	)
	return result, nil
}

// openSource opens one per-venue input and positions it past the header.
// Every failure here is recoverable: the venue simply contributes nothing.
func openSource(path string, log logger.Interface) (*source, recordv1.Header, error) {
	info, err := os.Stat(path)
	if err != nil {
		log.Warn("skipping missing source",
			logger.Field{Key: "path", Value: path},
		)
		return nil, recordv1.Header{}, errors.ErrMissingSource
	}
	if info.Size() < recordv1.HeaderSize {
		log.Warn("skipping source smaller than header",
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "size", Value: info.Size()},
		)
		return nil, recordv1.Header{}, errors.ErrTruncatedInput
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn("skipping unreadable source",
			logger.Field{Key: "path", Value: path},
		)
		return nil, recordv1.Header{}, errors.ErrMissingSource
	}

	r := bufio.NewReader(f)
	header, err := recordv1.ReadHeader(r)
	if err != nil {
		f.Close()
		log.Warn("skipping source with unreadable header",
			logger.Field{Key: "path", Value: path},
		)
		return nil, recordv1.Header{}, errors.ErrTruncatedInput
	}

	return &source{
		path:   path,
		file:   f,
		reader: r,
		feedID: header.FeedID,
	}, header, nil
}

