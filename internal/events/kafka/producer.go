package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType names an auth lifecycle event.
type EventType string

const (
	EventUserRegistered  EventType = "auth.user.registered"
	EventUserLoggedIn    EventType = "auth.user.logged_in"
	EventUserLoggedOut   EventType = "auth.user.logged_out"
	EventPasswordReset   EventType = "auth.user.password_reset"
	EventSessionsRevoked EventType = "auth.user.sessions_revoked"
	EventEmailVerified   EventType = "auth.user.email_verified"
)

// Event is the envelope published to Kafka.
type Event struct {
	ID      string          `json:"id"`
	Type    EventType       `json:"type"`
	Source  string          `json:"source"`
	Subject string          `json:"subject,omitempty"`
	Time    time.Time       `json:"time"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Publisher emits auth lifecycle events. Publishing is best effort: callers
// log failures and carry on with the primary operation.
type Publisher interface {
	Publish(ctx context.Context, eventType EventType, subject string, data interface{}) error
	Close() error
}

// Producer is a sarama-backed Publisher.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	source   string
	logger   *zap.Logger
}

// NewProducer creates a synchronous Kafka producer for the given brokers
// and topic. source identifies this service in the event envelope.
func NewProducer(brokers []string, topic, source string, logger *zap.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    topic,
		source:   source,
		logger:   logger,
	}, nil
}

// Publish marshals the event and sends it, keyed by subject so events for
// one user stay ordered within a partition.
func (p *Producer) Publish(_ context.Context, eventType EventType, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Source:  p.source,
		Subject: subject,
		Time:    time.Now().UTC(),
		Data:    payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(eventJSON),
	}
	if subject != "" {
		msg.Key = sarama.StringEncoder(subject)
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}
	p.logger.Debug("Published event",
		zap.String("type", string(eventType)),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	return p.producer.Close()
}

var _ Publisher = (*Producer)(nil)

// NoopPublisher drops all events. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, EventType, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                                  { return nil }

var _ Publisher = NoopPublisher{}
