package bars

import (
	"bufio"
	"fmt"
	"os"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/interval"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// Processor turns tick files into one-second bar files.
type Processor struct {
	interval interval.Interval
	logger   logger.Interface
}

// Result reports one aggregation run.
type Result struct {
	RecordsRead uint32
	BarsWritten uint32
}

// NewProcessor creates a Processor aggregating on the given interval.
func NewProcessor(iv interval.Interval, log logger.Interface) *Processor {
	return &Processor{
		interval: iv,
		logger:   log,
	}
}

// ProcessTopsFile aggregates one per-venue tops file into the six per-side,
// per-level bar files. outputPath maps each series to its destination file.
// Empty sentinel levels contribute no sample to their series.
func (p *Processor) ProcessTopsFile(inputPath string, outputPath func(Series) string) (Result, error) {
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

	series := AllSeries()
	aggregators := make(map[Series]*interval.Aggregator, len(series))
	for _, s := range series {
		aggregators[s] = interval.NewAggregator(p.interval)
	}

	buf := make([]byte, recordv1.TopsSize)
	for i := uint32(0); i < header.Count; i++ {
		if err := recordv1.ReadRaw(reader, buf); err != nil {
			p.logger.Warn("tops file ended before declared count",
				logger.Field{Key: "path", Value: inputPath},
				logger.Field{Key: "declared", Value: header.Count},
				logger.Field{Key: "read", Value: result.RecordsRead},
			)
			break
		}
		tops, err := recordv1.DecodeTops(buf)
		if err != nil {
			return result, errors.TracerFromError(err)
		}
		result.RecordsRead++

		for _, s := range series {
			lvl := s.level(tops)
			if lvl.Empty() {
				continue
			}
			aggregators[s].Add(interval.Sample{TsNanos: tops.Ts, Price: lvl.PriceFloat()})
		}
	}

	for _, s := range series {
		path := outputPath(s)
		written, err := p.writeBarFile(path, header, aggregators[s].Sorted())
		if err != nil {
			return result, err
		}
		result.BarsWritten += written
	}

	p.logger.Info("tops bars written",
		logger.Field{Key: "input", Value: inputPath},
		logger.Field{Key: "records_read", Value: result.RecordsRead},
		logger.Field{Key: "bars_written", Value: result.BarsWritten},
	)
	return result, nil
}

// ProcessFillsFile aggregates one per-venue fills file into a single trade
// bar file carrying traded volume per bucket.
func (p *Processor) ProcessFillsFile(inputPath, outputPath string) (Result, error) {
	var result Result

	in, err := os.Open(inputPath)
	if err != nil {
		return result, errors.NewTracer(fmt.Sprintf("open fills input %s", inputPath)).
			Wrap(errors.ErrMissingSource)
	}
	defer in.Close()

	reader := bufio.NewReader(in)
	header, err := recordv1.ReadHeader(reader)
	if err != nil {
		return result, errors.TracerFromError(err)
	}

	agg := interval.NewAggregator(p.interval)
	buf := make([]byte, recordv1.FillsSize)
	for i := uint32(0); i < header.Count; i++ {
		if err := recordv1.ReadRaw(reader, buf); err != nil {
			p.logger.Warn("fills file ended before declared count",
				logger.Field{Key: "path", Value: inputPath},
				logger.Field{Key: "declared", Value: header.Count},
				logger.Field{Key: "read", Value: result.RecordsRead},
			)
			break
		}
		fills, err := recordv1.DecodeFills(buf)
		if err != nil {
			return result, errors.TracerFromError(err)
		}
		result.RecordsRead++

		agg.Add(interval.Sample{
			TsNanos: fills.Ts,
			Price:   float64(fills.TradePrice) / recordv1.PriceScale,
			Volume:  int64(fills.TradeQty),
		})
	}

	buckets := agg.Sorted()
	out, err := os.Create(outputPath)
	if err != nil {
		return result, errors.NewTracer(fmt.Sprintf("open bars output %s", outputPath)).
			Wrap(errors.ErrOutputUnwritable)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	outHeader := header
	outHeader.Count = uint32(len(buckets))
	if _, err := writer.Write(recordv1.EncodeHeader(outHeader)); err != nil {
		return result, errors.NewTracer("write bars header").Wrap(errors.ErrOutputUnwritable)
	}
	for _, b := range buckets {
		bar := recordv1.FillsBar{
			Bar: recordv1.Bar{
				TsSec: b.BucketSec,
				Open:  b.Open,
				High:  b.High,
				Low:   b.Low,
				Close: b.Close,
			},
			Volume: int32(b.Volume),
		}
		if _, err := writer.Write(recordv1.EncodeFillsBar(bar)); err != nil {
			return result, errors.NewTracer("write fills bar").Wrap(errors.ErrOutputUnwritable)
		}
	}
	if err := writer.Flush(); err != nil {
		return result, errors.NewTracer("flush bars output").Wrap(errors.ErrOutputUnwritable)
	}

	result.BarsWritten = outHeader.Count
	p.logger.Info("fills bars written",
		logger.Field{Key: "input", Value: inputPath},
		logger.Field{Key: "output", Value: outputPath},
		logger.Field{Key: "records_read", Value: result.RecordsRead},
		logger.Field{Key: "bars_written", Value: result.BarsWritten},
	)
	return result, nil
}

func (p *Processor) writeBarFile(path string, inputHeader recordv1.Header, buckets []interval.OHLC) (uint32, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, errors.NewTracer(fmt.Sprintf("open bars output %s", path)).
			Wrap(errors.ErrOutputUnwritable)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	header := inputHeader
	header.Count = uint32(len(buckets))
	if _, err := writer.Write(recordv1.EncodeHeader(header)); err != nil {
		return 0, errors.NewTracer("write bars header").Wrap(errors.ErrOutputUnwritable)
	}
	for _, b := range buckets {
		bar := recordv1.Bar{
			TsSec: b.BucketSec,
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
		}
		if _, err := writer.Write(recordv1.EncodeBar(bar)); err != nil {
			return 0, errors.NewTracer("write bar").Wrap(errors.ErrOutputUnwritable)
		}
	}
	if err := writer.Flush(); err != nil {
		return 0, errors.NewTracer("flush bars output").Wrap(errors.ErrOutputUnwritable)
	}
	return header.Count, nil
}
