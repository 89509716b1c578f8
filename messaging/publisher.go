// Package messaging fans out booking lifecycle events for downstream
// services (notifications, analytics, workflow automation). Publishing is
// best-effort: a failed publish is logged and never fails the request that
// produced the event.
package messaging

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/DC111-ui/hss-storage-platform/config"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

// Event types emitted by the booking API.
const (
	EventBookingSubmitted = "booking_submitted"
	EventStaffApproved    = "staff_booking_approved"
	EventStatusUpdated    = "status_updated"
	EventPaymentCaptured  = "payment_captured"
)

// Envelope is the wire shape of a published business event.
type Envelope struct {
	Source     string         `json:"source"`
	EventType  string         `json:"event_type"`
	BookingID  string         `json:"booking_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// Publisher publishes business events.
type Publisher interface {
	Publish(ctx context.Context, eventType, bookingID string, payload map[string]any) error
	Close() error
}

// NoopPublisher is the fallback when messaging integration is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, map[string]any) error { return nil }
func (NoopPublisher) Close() error                                                  { return nil }

// KafkaPublisher writes event envelopes to a Kafka topic, keyed by booking id.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType, bookingID string, payload map[string]any) error {
	envelope := Envelope{
		Source:     "hss-backend-api",
		EventType:  eventType,
		BookingID:  bookingID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	key := bookingID
	if key == "" {
		key = "-"
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: raw,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewPublisherFromConfig builds the configured publisher, falling back to
// NoopPublisher when messaging is disabled or misconfigured.
func NewPublisherFromConfig() Publisher {
	logger := utils.GetLogger().Sugar()
	if !strings.EqualFold(config.AppConfig.MessageBusMode, "kafka") {
		return NoopPublisher{}
	}

	brokers := strings.Split(config.AppConfig.KafkaBrokers, ",")
	if len(brokers) == 0 || brokers[0] == "" {
		logger.Warn("MESSAGE_BUS_MODE=kafka but KAFKA_BROKERS is not set. Falling back to NoopPublisher.")
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, config.AppConfig.KafkaTopic)
}
