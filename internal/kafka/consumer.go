package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"github.com/predict-win/internal/config"
	"github.com/predict-win/internal/domain"
)

// NotificationHandler receives notifications from the live feed
type NotificationHandler interface {
	DeliverNotification(n domain.Notification)
}

// Consumer consumes the notification feed from Kafka
type Consumer struct {
	config         *config.KafkaConfig
	handler        NotificationHandler
	logger         *slog.Logger
	consumerGroup  sarama.ConsumerGroup
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	startupTimeout time.Duration
	retryBackoff   time.Duration
}

const (
	defaultStartupTimeout = 10 * time.Second
	defaultRetryBackoff   = 2 * time.Second
)

// NewConsumer creates a new Kafka consumer
func NewConsumer(cfg *config.KafkaConfig, handler NotificationHandler, logger *slog.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_0_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("creating consumer group: %w", err)
	}

	return newConsumer(cfg, consumerGroup, handler, logger), nil
}

func newConsumer(cfg *config.KafkaConfig, group sarama.ConsumerGroup, handler NotificationHandler, logger *slog.Logger) *Consumer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Consumer{
		config:         cfg,
		handler:        handler,
		logger:         logger,
		consumerGroup:  group,
		ctx:            ctx,
		cancel:         cancel,
		startupTimeout: defaultStartupTimeout,
		retryBackoff:   defaultRetryBackoff,
	}
}

// Start begins consuming notifications. It returns once the first group
// session is set up, or with an error if that does not happen within the
// startup timeout; in that case the consumer is already stopped.
func (c *Consumer) Start() error {
	c.logger.Info("starting Kafka consumer",
		"brokers", c.config.Brokers,
		"topic", c.config.NotificationTopic,
		"group_id", c.config.GroupID,
	)

	ready := make(chan struct{})
	var once sync.Once
	handler := &consumerGroupHandler{
		consumer:  c,
		markReady: func() { once.Do(func() { close(ready) }) },
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			err := c.consumerGroup.Consume(c.ctx, []string{c.config.NotificationTopic}, handler)
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || c.ctx.Err() != nil {
				return
			}
			if err != nil {
				c.logger.Error("error from consumer", "error", err)
			}

			// Consume fails fast when brokers or the topic are missing
			select {
			case <-c.ctx.Done():
				return
			case <-time.After(c.retryBackoff):
			}
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-c.ctx.Done():
				return
			case err, ok := <-c.consumerGroup.Errors():
				if !ok {
					return
				}
				c.logger.Error("consumer group error", "error", err)
			}
		}
	}()

	select {
	case <-ready:
		c.logger.Info("Kafka consumer ready")
		return nil
	case <-time.After(c.startupTimeout):
		if err := c.Stop(); err != nil {
			c.logger.Warn("failed to stop Kafka consumer", "error", err)
		}
		return fmt.Errorf("kafka consumer not ready after %s", c.startupTimeout)
	}
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop() error {
	c.logger.Info("stopping Kafka consumer")
	c.cancel()
	c.wg.Wait()
	return c.consumerGroup.Close()
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer  *Consumer
	markReady func()
}

// Setup is called at the beginning of a new session
func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.markReady()
	return nil
}

// Cleanup is called at the end of a session
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim collects notifications into small batches and hands them to
// the handler in arrival order
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	cfg := h.consumer.config
	logger := h.consumer.logger
	batch := make([]domain.Notification, 0, cfg.BatchSize)
	batchTimer := time.NewTimer(cfg.BatchTimeout)
	defer batchTimer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, n := range batch {
			h.consumer.handler.DeliverNotification(n)
		}
		logger.Debug("delivered notifications", "batch_size", len(batch))
		batch = batch[:0]
	}

	for {
		select {
		case <-session.Context().Done():
			flush()
			return nil

		case <-batchTimer.C:
			flush()
			batchTimer.Reset(cfg.BatchTimeout)

		case message, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}

			n, err := DecodeNotification(message.Value)
			if err != nil {
				logger.Warn("skipping notification message",
					"error", err,
					"offset", message.Offset,
					"partition", message.Partition,
				)
				session.MarkMessage(message, "")
				continue
			}

			batch = append(batch, n)
			session.MarkMessage(message, "")

			if len(batch) >= cfg.BatchSize {
				flush()
				batchTimer.Reset(cfg.BatchTimeout)
			}
		}
	}
}

// NotificationMessage is the wire format of the notification feed
type NotificationMessage struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Time     string `json:"time,omitempty"`
}

// DecodeNotification parses and validates one feed message. Delivered
// notifications always start unread.
func DecodeNotification(data []byte) (domain.Notification, error) {
	var msg NotificationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return domain.Notification{}, fmt.Errorf("unmarshalling notification: %w", err)
	}
	if msg.ID == "" || msg.Title == "" {
		return domain.Notification{}, fmt.Errorf("notification %q: %w", msg.ID, domain.ErrInvalidRequest)
	}

	category := domain.Category(msg.Category)
	switch category {
	case domain.CategoryMatch, domain.CategoryReward, domain.CategorySystem:
	case "":
		category = domain.CategorySystem
	default:
		return domain.Notification{}, fmt.Errorf("notification %q has category %q: %w", msg.ID, msg.Category, domain.ErrInvalidRequest)
	}

	when := msg.Time
	if when == "" {
		when = "Just now"
	}

	return domain.Notification{
		ID:       msg.ID,
		Category: category,
		Title:    msg.Title,
		Message:  msg.Message,
		Time:     when,
	}, nil
}
