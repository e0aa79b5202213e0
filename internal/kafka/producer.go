package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/atomic"

	"github.com/predict-win/internal/config"
	"github.com/predict-win/internal/domain"
)

// Publisher sends activity events to Kafka. Events are fire-and-forget;
// delivery failures are logged and counted.
type Publisher struct {
	topic    string
	producer sarama.AsyncProducer
	logger   *slog.Logger
	wg       sync.WaitGroup

	sent   atomic.Int64
	failed atomic.Int64
}

// ProducerConfig returns the sarama settings used for activity events
func ProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Flush.Frequency = 100 * time.Millisecond
	cfg.Producer.Flush.Messages = 100
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

// NewPublisher connects an async producer to the configured brokers
func NewPublisher(cfg *config.KafkaConfig, logger *slog.Logger) (*Publisher, error) {
	producer, err := sarama.NewAsyncProducer(cfg.Brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("creating producer: %w", err)
	}
	return NewPublisherWithProducer(producer, cfg.ActivityTopic, logger), nil
}

// NewPublisherWithProducer wraps an existing producer. The producer must
// return both successes and errors.
func NewPublisherWithProducer(producer sarama.AsyncProducer, topic string, logger *slog.Logger) *Publisher {
	p := &Publisher{topic: topic, producer: producer, logger: logger}

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		for range producer.Successes() {
			p.sent.Inc()
		}
	}()
	go func() {
		defer p.wg.Done()
		for err := range producer.Errors() {
			p.failed.Inc()
			p.logger.Error("failed to publish activity event", "error", err.Err, "topic", p.topic)
		}
	}()

	return p
}

// Publish queues an event keyed by its session
func (p *Publisher) Publish(ctx context.Context, event domain.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event %s: %w", event.Type, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.SessionID),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	select {
	case p.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublisherStats reports delivery counters
type PublisherStats struct {
	Sent   int64 `json:"sent"`
	Failed int64 `json:"failed"`
}

// Stats returns the publisher's counters
func (p *Publisher) Stats() PublisherStats {
	return PublisherStats{Sent: p.sent.Load(), Failed: p.failed.Load()}
}

// Close flushes pending events and shuts the producer down
func (p *Publisher) Close() error {
	p.logger.Info("closing Kafka publisher")
	p.producer.AsyncClose()
	p.wg.Wait()
	return nil
}
