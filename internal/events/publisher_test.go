// internal/events/publisher_test.go
package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gamevault/gamestore-backend/internal/config"
)

func TestDisabledPublisherIsNoOp(t *testing.T) {
	p := NewPublisher(config.KafkaConfig{Enabled: false})

	assert.Nil(t, p.writer)

	// Publishing and closing without a broker must not panic or block.
	p.Publish(context.Background(), OrderEvent{
		Type:    TypeOrderPlaced,
		OrderID: uuid.New(),
	})
	assert.NoError(t, p.Close())
}

func TestEnabledPublisherConfiguresWriter(t *testing.T) {
	p := NewPublisher(config.KafkaConfig{
		Enabled: true,
		Brokers: []string{"localhost:9092"},
		Topic:   "orders",
	})
	defer p.Close()

	assert.NotNil(t, p.writer)
	assert.Equal(t, "orders", p.writer.Topic)
}
