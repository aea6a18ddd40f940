// Package publish replays merged tick streams onto a Kafka topic for
// downstream consumers. It is a batch export stage, not a live feed.
package publish

import (
	"context"

	"github.com/segmentio/kafka-go"

	publishv1 "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/internal/domain/publish/v1"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/config"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/logger"
)

// Publisher publishes tick events to a Kafka topic.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a Kafka publisher for merged tick events.
func NewPublisher(cfg config.KafkaConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTickEvent publishes one tick event to the configured topic.
func (p *Publisher) PublishTickEvent(ctx context.Context, event *publishv1.TickEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.Symbol),
		Value: publishv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "symbol", Value: event.Symbol},
			logger.Field{Key: "feed_id", Value: event.FeedID},
		)
		return errors.NewTracer("failed to publish tick event")
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
