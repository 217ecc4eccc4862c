package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher writes invoice events to Kafka. A nil *Publisher is valid and
// drops every event, so callers never need to branch on configuration.
type Publisher struct {
	w        *kafka.Writer
	producer string
	log      *zap.Logger
}

// NewPublisher builds a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic, producer string, log *zap.Logger) *Publisher {
	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		producer: producer,
		log:      log,
	}
}

// PublishInvoice wraps the payload in an envelope keyed by tenant so all of
// a tenant's events stay ordered on one partition. Publish failures are
// logged, not surfaced: the store write has already committed.
func (p *Publisher) PublishInvoice(ctx context.Context, eventType string, tenantID uint, payload InvoicePayload) {
	if p == nil {
		return
	}

	env := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     p.producer,
		TenantID:     tenantID,
		Payload:      MustMarshal(payload),
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("tenant-%d", tenantID)),
		Value: MustMarshal(env),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish invoice event",
			zap.String("event_type", eventType),
			zap.Uint("tenant_id", tenantID),
			zap.Error(err))
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.w.Close()
}
