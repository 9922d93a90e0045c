package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderservice/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const rabbitExchangeType = "topic"

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes envelopes to a topic exchange using the event type
// (for example order.status_changed) as routing key.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	producer string
}

// DialRabbit connects, retrying a few times while the broker starts, and
// declares the durable topic exchange.
func DialRabbit(url, exchange, producer string, logger *slog.Logger) (*RabbitPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := 1; attempt <= 5; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn("rabbitmq connection failed", "attempt", attempt, "error", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("could not open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, rabbitExchangeType, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	p := newRabbitPublisher(ch, exchange, producer)
	p.conn = conn
	return p, nil
}

func newRabbitPublisher(ch amqpChannel, exchange, producer string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, exchange: exchange, producer: producer}
}

func (p *RabbitPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	body, err := marshalEnvelope(ctx, p.producer, msg)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		p.exchange,
		msg.EventType,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     msg.ID.String(),
			CorrelationId: msg.AggregateID.String(),
			Type:          msg.EventType,
			Timestamp:     msg.CreatedAt,
			AppId:         p.producer,
			Body:          body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if connErr := p.conn.Close(); err == nil {
			err = connErr
		}
	}
	return err
}
