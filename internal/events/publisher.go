// internal/events/publisher.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/gamevault/gamestore-backend/internal/config"
)

// Event types published on the order topic.
const (
	TypeOrderPlaced   = "order.placed"
	TypeOrderPaid     = "order.paid"
	TypeOrderShipped  = "order.shipped"
	TypePaymentFailed = "payment.failed"
)

// OrderEvent is the envelope consumed by downstream fulfillment and
// analytics. OrderID keys the message so per-order events stay ordered.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Total      float64   `json:"total,omitempty"`
	Method     string    `json:"method,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher writes order lifecycle events to Kafka. A disabled publisher is
// a no-op so environments without a broker run unchanged.
type Publisher struct {
	writer *kafka.Writer
	logger *logrus.Entry
}

func NewPublisher(cfg config.KafkaConfig) *Publisher {
	p := &Publisher{logger: logrus.WithField("component", "events")}
	if !cfg.Enabled {
		return p
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	return p
}

// Publish is fire-and-forget: a broker outage never fails the order flow.
func (p *Publisher) Publish(ctx context.Context, event OrderEvent) {
	if p.writer == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Warn("failed to encode order event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: data,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithError(err).WithField("type", event.Type).Warn("failed to publish order event")
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}
