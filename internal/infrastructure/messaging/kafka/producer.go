// Package kafka streams order and wallet changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/events"
)

const writeTimeout = 5 * time.Second

// MessageWriter is the subset of *kafka.Writer the producer needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes bus events as JSON messages keyed by session ID
type Producer struct {
	writer MessageWriter
	topic  string
	logger logrus.FieldLogger
}

// NewWriter builds an async kafka-go writer for the configured brokers
func NewWriter(cfg *config.Config, logger logrus.FieldLogger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
		Topic:                  cfg.Kafka.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.WithError(err).WithField("messages", len(messages)).Error("kafka: delivery failed")
			}
		},
	}
}

// NewProducer creates a producer on top of writer
func NewProducer(writer MessageWriter, topic string, logger logrus.FieldLogger) *Producer {
	return &Producer{writer: writer, topic: topic, logger: logger}
}

// Topics lists the bus topics forwarded to Kafka
func Topics() []events.Topic {
	return []events.Topic{events.OrdersChanged, events.WalletChanged}
}

// Attach subscribes the producer to the forwarded topics and returns a
// func that detaches it again
func (p *Producer) Attach(bus *events.Bus) func() {
	var unsubs []func()
	for _, topic := range Topics() {
		unsubs = append(unsubs, bus.Subscribe(topic, p.Handle))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Handle is an events.Handler. Failures are logged, never returned to the
// mutation that published the event.
func (p *Producer) Handle(e events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, e); err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"topic":      e.Topic,
			"session_id": e.SessionID,
		}).Error("kafka: publish failed")
	}
}

// PublishEvent writes one event
func (p *Producer) PublishEvent(ctx context.Context, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(e.SessionID),
		Value: data,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_topic", Value: []byte(e.Topic)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", p.topic, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer
func (p *Producer) Close() error {
	return p.writer.Close()
}
