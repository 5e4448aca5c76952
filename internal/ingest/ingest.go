// Package ingest consumes raw text submissions from Kafka and publishes
// "index built" events once each submission has been turned into an
// ALICE-Search Index, backed by segmentio/kafka-go.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ext-sakamoro/ALICE-Search/pkg/config"
)

// TextSubmission is the payload consumed from the ingestion topic: a named
// blob of text waiting to be indexed.
type TextSubmission struct {
	ID   string `json:"id"`
	Text []byte `json:"text"`
}

// IndexBuilt is the payload published once a submission has been indexed.
type IndexBuilt struct {
	ID          string `json:"id"`
	TextLen     int    `json:"text_len"`
	SizeBytes   int    `json:"size_bytes"`
	BuildMillis int64  `json:"build_millis"`
}

// SubmissionHandler builds an Index (or otherwise acts on) a single
// TextSubmission, returning the IndexBuilt summary to publish.
type SubmissionHandler func(ctx context.Context, sub TextSubmission) (IndexBuilt, error)

// Consumer reads TextSubmission messages from Kafka and dispatches them to
// a SubmissionHandler, publishing an IndexBuilt event for each success.
type Consumer struct {
	reader   *kafka.Reader
	producer *Producer
	logger   *slog.Logger
	handler  SubmissionHandler
}

// NewConsumer creates a Consumer for cfg.IngestTopic, publishing
// completion events via producer.
func NewConsumer(cfg config.KafkaConfig, producer *Producer, handler SubmissionHandler) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.IngestTopic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1e3,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return &Consumer{
		reader:   r,
		producer: producer,
		logger:   slog.Default().With("component", "ingest-consumer", "topic", cfg.IngestTopic),
		handler:  handler,
	}
}

// Start enters the consume loop until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer started")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopping", "reason", ctx.Err())
			return c.reader.Close()
		default:
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("failed to fetch message", "error", err)
			continue
		}

		var sub TextSubmission
		if err := json.Unmarshal(msg.Value, &sub); err != nil {
			c.logger.Error("failed to decode submission", "error", err)
			continue
		}

		built, err := c.handler(ctx, sub)
		if err != nil {
			c.logger.Error("failed to process submission", "id", sub.ID, "error", err)
			continue
		}

		if c.producer != nil {
			if err := c.producer.PublishIndexBuilt(ctx, built); err != nil {
				c.logger.Error("failed to publish index-built event", "id", sub.ID, "error", err)
			}
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit message", "error", err)
		}
	}
}

// Close closes the underlying Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Producer publishes IndexBuilt events to Kafka.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer creates a Producer for the given topic.
func NewProducer(cfg config.KafkaConfig, topic string) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireAll,
	}
	return &Producer{writer: w, logger: slog.Default().With("component", "ingest-producer", "topic", topic)}
}

// PublishIndexBuilt publishes a single completion event.
func (p *Producer) PublishIndexBuilt(ctx context.Context, built IndexBuilt) error {
	value, err := json.Marshal(built)
	if err != nil {
		return fmt.Errorf("ingest: marshaling index-built event: %w", err)
	}

	msg := kafka.Message{Key: []byte(built.ID), Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("ingest: publishing index-built event: %w", err)
	}
	p.logger.Debug("index-built event published", "id", built.ID)
	return nil
}

// Close flushes pending writes and closes the underlying Kafka writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
