package publish

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	publishv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/publish/v1"
	recordv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/record/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// Replayer streams a merged tops file and publishes every entry.
type Replayer struct {
	publisher publishv1.TickPublisher
	logger    logger.Interface
}

// NewReplayer creates a Replayer publishing through the given publisher.
func NewReplayer(publisher publishv1.TickPublisher, log logger.Interface) *Replayer {
	return &Replayer{
		publisher: publisher,
		logger:    log,
	}
}

// Replay publishes every merged entry of inputPath under the given symbol
// and returns how many events were published. A truncated tail is dropped
// warn-only, matching the readers of the same files.
func (r *Replayer) Replay(ctx context.Context, symbol, inputPath string) (uint32, error) {
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

	var published uint32
	buf := make([]byte, recordv1.TaggedTopsSize)
	for {
		err := recordv1.ReadRaw(reader, buf)
		if err == io.EOF {
			break
		}
		if errors.Is(err, errors.ErrTruncatedInput) {
			r.logger.Warn("discarding incomplete final merged entry",
				logger.Field{Key: "path", Value: inputPath},
				logger.Field{Key: "published", Value: published},
			)
			break
		}
		if err != nil {
			return published, errors.TracerFromError(err)
		}

		entry, err := recordv1.DecodeTaggedTops(buf)
		if err != nil {
			return published, errors.TracerFromError(err)
		}

		event := publishv1.CreateFromTaggedTops(symbol, entry)
		if err := r.publisher.PublishTickEvent(ctx, event); err != nil {
			return published, err
		}
		published++
	}

	r.logger.Info("merged stream replayed",
		logger.Field{Key: "symbol", Value: symbol},
		logger.Field{Key: "input", Value: inputPath},
		logger.Field{Key: "published", Value: published},
	)
	return published, nil
}
