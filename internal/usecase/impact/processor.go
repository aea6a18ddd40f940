package impact

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// Processor runs the execution-cost model over a tops file and writes the
// change-filtered results stream.
type Processor struct {
	targetQty uint32
	logger    logger.Interface
}

// Result reports one processing run.
type Result struct {
	TopsProcessed uint32
	Written       uint32
	Header        recordv1.Header
}

// NewProcessor creates a Processor for one target quantity. The quantity is
// validated by the CLI before any I/O; zero is rejected there.
func NewProcessor(targetQty uint32, log logger.Interface) *Processor {
	return &Processor{
		targetQty: targetQty,
		logger:    log,
	}
}

// ProcessVenueFile evaluates a per-venue tops file (header + tops records).
func (p *Processor) ProcessVenueFile(inputPath, outputPath string) (Result, error) {
	return p.process(inputPath, outputPath, recordv1.TopsSize, func(buf []byte) (recordv1.Tops, error) {
		return recordv1.DecodeTops(buf)
	})
}

// ProcessMergedFile evaluates a merged tops file, where every record carries
// an origin feed id prefix. The origin does not affect the cost model; the
// consolidated record's levels are evaluated as-is.
func (p *Processor) ProcessMergedFile(inputPath, outputPath string) (Result, error) {
	return p.process(inputPath, outputPath, recordv1.TaggedTopsSize, func(buf []byte) (recordv1.Tops, error) {
		tagged, err := recordv1.DecodeTaggedTops(buf)
		if err != nil {
			return recordv1.Tops{}, err
		}
		return tagged.Tops, nil
	})
}

func (p *Processor) process(inputPath, outputPath string, entrySize int, decode func([]byte) (recordv1.Tops, error)) (Result, error) {
	var result Result

	in, err := os.Open(inputPath)
	if err != nil {
		return result, errors.NewTracer(fmt.Sprintf("open tops input %s", inputPath)).
			Wrap(errors.ErrMissingSource)
	}
	defer in.Close()

	reader := bufio.NewReader(in)
	header, err := recordv1.ReadHeader(reader)
	if err != nil {
		return result, errors.TracerFromError(err)
	}
	result.Header = header

	out, err := os.Create(outputPath)
	if err != nil {
		return result, errors.NewTracer(fmt.Sprintf("open results output %s", outputPath)).
			Wrap(errors.ErrOutputUnwritable)
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	writer := NewChangeFilteredWriter(bw)

	buf := make([]byte, entrySize)
	for i := uint32(0); i < header.Count; i++ {
		if err := recordv1.ReadRaw(reader, buf); err != nil {
			p.logger.Warn("tops file ended before declared count",
				logger.Field{Key: "path", Value: inputPath},
				logger.Field{Key: "declared", Value: header.Count},
				logger.Field{Key: "processed", Value: result.TopsProcessed},
			)
			break
		}
		tops, err := decode(buf)
		if err != nil {
			return result, errors.TracerFromError(err)
		}
		result.TopsProcessed++

		if _, err := writer.Write(Compute(p.targetQty, tops)); err != nil {
			return result, err
		}
	}

	if err := bw.Flush(); err != nil {
		return result, errors.NewTracer("flush results output").Wrap(errors.ErrOutputUnwritable)
	}

	result.Written = writer.Written()
	p.logger.Info("execution results written",
		logger.Field{Key: "input", Value: inputPath},
		logger.Field{Key: "output", Value: outputPath},
		logger.Field{Key: "tops_processed", Value: result.TopsProcessed},
		logger.Field{Key: "results_written", Value: result.Written},
	)
	return result, nil
}

// ValidateTargetQuantity rejects a non-numeric, zero or out-of-range CLI
// quantity before any file is touched.
func ValidateTargetQuantity(raw string) (uint32, error) {
	qty, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.NewTracer(fmt.Sprintf("target quantity %q is not a number", raw)).
			Wrap(errors.ErrMalformedArgument)
	}
	if qty == 0 || qty > math.MaxUint32 {
		return 0, errors.NewTracer(fmt.Sprintf("target quantity %d out of range (1..%d)", qty, uint32(math.MaxUint32))).
			Wrap(errors.ErrMalformedArgument)
	}
	return uint32(qty), nil
}
