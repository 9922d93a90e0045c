package ports

import "context"

// EventPublisher delivers outbox messages to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
	Close() error
}
