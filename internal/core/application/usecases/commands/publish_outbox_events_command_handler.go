package commands

import (
	"context"
	"fmt"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/ports"
)

// PublishOutboxEventsCommandHandler drains the outbox in creation order.
// Publishing stops at the first broker failure so that later events of the
// same order are not delivered ahead of earlier ones; the failed message and
// everything after it stay pending for the next run.
type PublishOutboxEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewPublishOutboxEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishOutboxEventsCommandHandler {
	return PublishOutboxEventsCommandHandler{uowFactory: uowFactory, publisher: publisher, now: time.Now}
}

// Handle returns how many messages were published in this run.
func (h *PublishOutboxEventsCommandHandler) Handle(ctx context.Context, cmd PublishOutboxEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(pending))
	var publishErr error
	for _, msg := range pending {
		if publishErr = h.publisher.Publish(ctx, msg); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", msg.EventType, msg.ID.String(), publishErr)
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published, h.now()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
