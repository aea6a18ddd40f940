// Package dump renders merged tick files as CSV artifacts for ad-hoc
// inspection. Prices are rendered from their fixed-point form exactly, with
// no float round-trip.
package dump

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// priceExponent is the decimal exponent of the fixed-point price encoding.
const priceExponent = -9

// Dumper writes merged tops files as CSV.
type Dumper struct {
	logger logger.Interface
}

// NewDumper creates a Dumper.
func NewDumper(log logger.Interface) *Dumper {
	return &Dumper{logger: log}
}

// DumpMergedTops converts one merged tops file to CSV. Empty sentinel levels
// render as empty cells.
func (d *Dumper) DumpMergedTops(inputPath, outputPath string) (uint32, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, errors.NewTracer(fmt.Sprintf("open merged input %s", inputPath)).
			Wrap(errors.ErrMissingSource)
	}
	defer in.Close()

	reader := bufio.NewReader(in)
	if _, err := recordv1.ReadHeader(reader); err != nil {
		return 0, errors.TracerFromError(err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, errors.NewTracer(fmt.Sprintf("open csv output %s", outputPath)).
			Wrap(errors.ErrOutputUnwritable)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	columns := []string{"ts", "seqno", "feed_id"}
	for lvl := 1; lvl <= recordv1.BookLevels; lvl++ {
		columns = append(columns,
			fmt.Sprintf("bid_price_%d", lvl), fmt.Sprintf("bid_qty_%d", lvl),
			fmt.Sprintf("ask_price_%d", lvl), fmt.Sprintf("ask_qty_%d", lvl),
		)
	}
	if err := writer.Write(columns); err != nil {
		return 0, errors.NewTracer("write csv header").Wrap(errors.ErrOutputUnwritable)
	}

	var rows uint32
	buf := make([]byte, recordv1.TaggedTopsSize)
	for {
		err := recordv1.ReadRaw(reader, buf)
		if err == io.EOF {
			break
		}
		if errors.Is(err, errors.ErrTruncatedInput) {
			d.logger.Warn("discarding incomplete final merged entry",
				logger.Field{Key: "path", Value: inputPath},
				logger.Field{Key: "rows", Value: rows},
			)
			break
		}
		if err != nil {
			return rows, errors.TracerFromError(err)
		}

		entry, err := recordv1.DecodeTaggedTops(buf)
		if err != nil {
			return rows, errors.TracerFromError(err)
		}

		row := []string{
			strconv.FormatUint(entry.Tops.Ts, 10),
			strconv.FormatUint(entry.Tops.Seqno, 10),
			strconv.FormatUint(entry.FeedID, 10),
		}
		for lvl := 0; lvl < recordv1.BookLevels; lvl++ {
			row = append(row, levelCells(entry.Tops.Bids[lvl])...)
			row = append(row, levelCells(entry.Tops.Asks[lvl])...)
		}
		if err := writer.Write(row); err != nil {
			return rows, errors.NewTracer("write csv row").Wrap(errors.ErrOutputUnwritable)
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, errors.NewTracer("flush csv output").Wrap(errors.ErrOutputUnwritable)
	}

	d.logger.Info("merged tops dumped",
		logger.Field{Key: "input", Value: inputPath},
		logger.Field{Key: "output", Value: outputPath},
		logger.Field{Key: "rows", Value: rows},
	)
	return rows, nil
}

func levelCells(level recordv1.Level) []string {
	if level.Empty() {
		return []string{"", ""}
	}
	price := decimal.New(level.Price, priceExponent)
	return []string{price.String(), strconv.FormatUint(uint64(level.Qty), 10)}
}
