package commands

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler coordinates an order update:
//
//  1. load the order under a row lock
//  2. ask the transition policy about a requested status change
//  3. apply every field, persist it and record an order.status_changed event
//  4. commit, then hand the new status to the effect dispatcher
//
// A denied transition rolls the whole update back. Effects are dispatched only
// after the commit and their outcome never changes the result of Handle.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     TransitionPolicy
	dispatcher EffectDispatcher
	now        func() time.Time
}

func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy TransitionPolicy,
	dispatcher EffectDispatcher,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Handle applies the update and returns the order as stored after commit.
// Errors: *errs.ObjectNotFoundError, *errs.InvalidTransitionError, validation or storage errors.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	statusChanged := false

	if requested := cmd.Status(); requested != nil {
		if err = h.policy.Check(previous, *requested); err != nil {
			return nil, err
		}
		if err = aggregate.ChangeStatus(*requested); err != nil {
			return nil, err
		}
		statusChanged = true
	}

	if err = applyFields(aggregate, cmd); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if statusChanged {
		event, eventErr := newOrderEvent(EventOrderStatusChanged, aggregate, previous, h.now())
		if eventErr != nil {
			return nil, eventErr
		}
		if err = uow.OutboxRepository().Add(ctx, event); err != nil {
			return nil, err
		}
	}

	refreshed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if statusChanged {
		h.dispatcher.Dispatch(ctx, refreshed, refreshed.Status())
	}

	return refreshed, nil
}

func applyFields(aggregate *order.Order, cmd UpdateOrderCommand) error {
	if paymentStatus := cmd.PaymentStatus(); paymentStatus != nil {
		if err := aggregate.ChangePaymentStatus(*paymentStatus); err != nil {
			return err
		}
	}
	if driverID := cmd.DriverID(); driverID != nil {
		if err := aggregate.AssignDriver(*driverID); err != nil {
			return err
		}
	}
	if address := cmd.DeliveryAddress(); address != nil {
		if err := aggregate.ChangeDeliveryAddress(*address); err != nil {
			return err
		}
	}
	if note := cmd.DeliveryNote(); note != nil {
		aggregate.ChangeDeliveryNote(*note)
	}
	return nil
}
