package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	d "github.com/kakairsyad/Interior-market/internal/domain"
)

const (
	TopicCheckoutCompleted = "checkout-completed"
	EventCheckoutCompleted = "checkout.completed"
)

// OrderPublisher announces completed orders.
type OrderPublisher interface {
	Publish(ctx context.Context, order d.Order) error
}

// MessageWriter is the subset of *kafka.Writer used for publishing.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicCheckoutCompleted,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return NewKafkaPublisherWithWriter(w)
}

func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, timeout: 5 * time.Second}
}

func (p *KafkaPublisher) Publish(ctx context.Context, order d.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order %s: %w", order.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()), // order id keeps one order on one partition
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventCheckoutCompleted)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order %s: %w", order.ID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher writes completed orders to the log when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, order d.Order) error {
	p.logger.Info("order completed",
		zap.String("event_type", EventCheckoutCompleted),
		zap.String("order_id", order.ID.String()),
		zap.String("session_id", order.SessionID),
		zap.Int("lines", len(order.Lines)),
		zap.String("total", order.Totals.Total.StringFixed(2)),
		zap.String("currency", order.Currency),
	)
	return nil
}
