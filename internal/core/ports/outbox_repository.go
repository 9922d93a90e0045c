package ports

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/kernel"
)

// OutboxMessage is an integration event stored in the same transaction as the
// order change that produced it and relayed to the broker afterwards.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// OutboxRepository stores and drains outbox messages.
type OutboxRepository interface {
	// Add appends a message to the outbox.
	Add(ctx context.Context, msg OutboxMessage) error

	// GetUnpublished returns up to limit pending messages, oldest first, locking
	// them so that concurrent relays skip rather than duplicate them.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the given messages as delivered.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
