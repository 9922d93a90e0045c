package commands

import (
	"context"
	"time"
)

// DeleteOrderCommandHandler removes an order and records an order.deleted event.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	event, err := newOrderEvent(EventOrderDeleted, aggregate, "", h.now())
	if err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
