package book

import (
	"bufio"
	"fmt"
	"io"
	"os"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	snapshotv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/snapshot/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// ConsolidatedFileFeedID marks snapshot files, which have no single origin
// venue.
const ConsolidatedFileFeedID = 0

// Processor replays a merged tops file through a Builder and writes every
// changed consolidated snapshot.
type Processor struct {
	levels int
	logger logger.Interface
}

// Result reports one snapshot run.
type Result struct {
	EntriesRead      uint32
	SnapshotsWritten uint32
}

// NewProcessor creates a Processor emitting ladders of up to levels price
// levels per side.
func NewProcessor(levels int, log logger.Interface) *Processor {
	return &Processor{
		levels: levels,
		logger: log,
	}
}

// Process reads a merged tops file and writes the consolidated snapshot
// stream. The output header inherits date and symbol from the input and
// counts snapshots actually written.
func (p *Processor) Process(inputPath, outputPath string) (Result, error) {
	var result Result

	in, err := os.Open(inputPath)
	if err != nil {
		return result, errors.NewTracer(fmt.Sprintf("open merged input %s", inputPath)).
			Wrap(errors.ErrMissingSource)
	}
	defer in.Close()

	reader := bufio.NewReader(in)
	inputHeader, err := recordv1.ReadHeader(reader)
	if err != nil {
		return result, errors.TracerFromError(err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return result, errors.NewTracer(fmt.Sprintf("open snapshot output %s", outputPath)).
			Wrap(errors.ErrOutputUnwritable)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	if _, err := writer.Write(make([]byte, recordv1.HeaderSize)); err != nil {
		return result, errors.NewTracer("write snapshot header slot").Wrap(errors.ErrOutputUnwritable)
	}

	builder := NewBuilder(p.levels)
	buf := make([]byte, recordv1.TaggedTopsSize)
	for {
		err := recordv1.ReadRaw(reader, buf)
		if err == io.EOF {
			break
		}
		if errors.Is(err, errors.ErrTruncatedInput) {
			p.logger.Warn("discarding incomplete final merged entry",
				logger.Field{Key: "path", Value: inputPath},
				logger.Field{Key: "entries_read", Value: result.EntriesRead},
			)
			break
		}
		if err != nil {
			return result, errors.TracerFromError(err)
		}

		entry, err := recordv1.DecodeTaggedTops(buf)
		if err != nil {
			return result, errors.TracerFromError(err)
		}
		result.EntriesRead++

		snap, changed := builder.Apply(entry)
		if !changed {
			continue
		}
		if err := snapshotv1.Write(writer, snap); err != nil {
			return result, errors.NewTracer("write snapshot").Wrap(errors.ErrOutputUnwritable)
		}
		result.SnapshotsWritten++
	}

	if err := writer.Flush(); err != nil {
		return result, errors.NewTracer("flush snapshot output").Wrap(errors.ErrOutputUnwritable)
	}

	outputHeader := recordv1.Header{
		FeedID:    ConsolidatedFileFeedID,
		DateInt:   inputHeader.DateInt,
		Count:     result.SnapshotsWritten,
		SymbolIdx: inputHeader.SymbolIdx,
	}
	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return result, errors.TracerFromError(err)
	}
	if _, err := out.Write(recordv1.EncodeHeader(outputHeader)); err != nil {
		return result, errors.NewTracer("rewrite snapshot header").Wrap(errors.ErrOutputUnwritable)
	}

	p.logger.Info("consolidated snapshots written",
		logger.Field{Key: "input", Value: inputPath},
		logger.Field{Key: "output", Value: outputPath},
		logger.Field{Key: "entries_read", Value: result.EntriesRead},
		logger.Field{Key: "snapshots_written", Value: result.SnapshotsWritten},
	)
	return result, nil
}
