package events

import (
	"context"
	"fmt"

	"orderservice/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes envelopes to one topic, keyed by order id so that
// the events of an order stay on one partition in order.
type KafkaPublisher struct {
	writer   messageWriter
	producer string
}

// NewKafkaPublisher creates a synchronous writer that waits for all in-sync replicas.
func NewKafkaPublisher(brokers []string, topic, producer string) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}, producer)
}

func newKafkaPublisher(writer messageWriter, producer string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	body, err := marshalEnvelope(ctx, p.producer, msg)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.AggregateID.String()),
		Value: body,
		Time:  msg.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(msg.EventType)},
			{Key: "event_id", Value: []byte(msg.ID.String())},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
