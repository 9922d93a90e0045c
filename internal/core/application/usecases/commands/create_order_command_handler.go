package commands

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places new orders.
// The subtotal is derived from the lines, the delivery fee comes from configuration
// and the initial status from the configured workflow. Orders entering the
// restaurant workflow are handed to the restaurant for evaluation after commit.
type CreateOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	dispatcher    EffectDispatcher
	deliveryFee   kernel.Money
	initialStatus order.Status
	now           func() time.Time
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher EffectDispatcher,
	deliveryFee kernel.Money,
	initialStatus order.Status,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		dispatcher:    dispatcher,
		deliveryFee:   deliveryFee,
		initialStatus: initialStatus,
		now:           time.Now,
	}
}

// Handle persists the order with an order.created event and returns it as stored.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		item, err := order.NewItem(line.ProductID, line.ProductName, line.UnitPrice, line.Quantity, line.Note)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.ProfileID(),
		cmd.RestaurantID(),
		cmd.DeliveryAddress(),
		cmd.DeliveryNote(),
		cmd.PaymentMethod(),
		items,
		h.deliveryFee,
		h.initialStatus,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	event, err := newOrderEvent(EventOrderCreated, aggregate, "", h.now())
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	stored, err := orderRepo.Get(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if stored.Status() == order.PendingRestaurant {
		h.dispatcher.Dispatch(ctx, stored, order.PendingRestaurant)
	}

	return stored, nil
}
