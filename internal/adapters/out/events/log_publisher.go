package events

import (
	"context"
	"log/slog"

	"orderservice/internal/core/ports"
)

// LogPublisher stands in for a broker when none is configured. It logs each
// event and reports success, so the outbox still drains.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "log_publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	p.logger.InfoContext(ctx, "order event",
		"event_id", msg.ID.String(),
		"event_type", msg.EventType,
		"order_id", msg.AggregateID.String(),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
