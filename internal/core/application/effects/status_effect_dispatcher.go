// Package effects runs the side effects that follow a committed status change.
//
// Effects are best effort: they run after the order has been persisted, in a
// goroutine detached from the caller, and their failures are logged and dropped.
// The status change itself never waits for or depends on them.
package effects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "orderservice/effects"

var ErrOrderIsRequired = errors.New("order is required to dispatch effects")

// StatusEffectDispatcher maps a new status to the collaborator calls it triggers:
//
//	pending_restaurant   -> Restaurant.EvaluateOrder
//	restaurant_accepted  -> Restaurant.GetRestaurant, then Driver.InitiateAssignment
//	anything else        -> nothing
//
// It trusts that the transition was validated before the order was persisted.
type StatusEffectDispatcher struct {
	restaurants ports.RestaurantClient
	drivers     ports.DriverClient
	tracer      trace.Tracer
	logger      *slog.Logger

	inflight sync.WaitGroup
}

func NewStatusEffectDispatcher(
	restaurants ports.RestaurantClient,
	drivers ports.DriverClient,
	tracer trace.Tracer,
	logger *slog.Logger,
) *StatusEffectDispatcher {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusEffectDispatcher{
		restaurants: restaurants,
		drivers:     drivers,
		tracer:      tracer,
		logger:      logger.With("component", "status_effect_dispatcher"),
	}
}

// Dispatch schedules the effects of newStatus and returns immediately.
// The effects keep running when ctx is cancelled; its values (trace context) are kept.
func (d *StatusEffectDispatcher) Dispatch(ctx context.Context, o *order.Order, newStatus order.Status) {
	if o == nil {
		d.logger.Error("dispatch skipped", "error", ErrOrderIsRequired, "status", newStatus.String())
		return
	}

	detached := context.WithoutCancel(ctx)

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("effect panicked", "order_id", o.ID().String(), "status", newStatus.String(), "panic", r)
			}
		}()

		if err := d.Run(detached, o, newStatus); err != nil {
			d.logger.Error("status effect failed",
				"order_id", o.ID().String(), "status", newStatus.String(), "error", err)
		}
	}()
}

// Wait blocks until every dispatched effect has finished.
func (d *StatusEffectDispatcher) Wait() {
	d.inflight.Wait()
}

// Run executes the effects of newStatus synchronously and returns the first failure.
func (d *StatusEffectDispatcher) Run(ctx context.Context, o *order.Order, newStatus order.Status) error {
	switch newStatus {
	case order.PendingRestaurant:
		return d.requestEvaluation(ctx, o)
	case order.RestaurantAccepted:
		return d.requestDriver(ctx, o)
	default:
		return nil
	}
}

func (d *StatusEffectDispatcher) requestEvaluation(ctx context.Context, o *order.Order) (err error) {
	ctx, span := d.startSpan(ctx, "effects.RequestEvaluation", o)
	defer func() { endSpan(span, err) }()

	if err = d.restaurants.EvaluateOrder(ctx, o); err != nil {
		return fmt.Errorf("evaluate order: %w", err)
	}

	d.logger.InfoContext(ctx, "order sent to restaurant for evaluation",
		"order_id", o.ID().String(), "restaurant_id", o.RestaurantID().String())
	return nil
}

func (d *StatusEffectDispatcher) requestDriver(ctx context.Context, o *order.Order) (err error) {
	ctx, span := d.startSpan(ctx, "effects.RequestDriver", o)
	defer func() { endSpan(span, err) }()

	restaurant, err := d.restaurants.GetRestaurant(ctx, o.RestaurantID())
	if err != nil {
		return fmt.Errorf("get restaurant %s: %w", o.RestaurantID().String(), err)
	}

	req := ports.TripRequest{
		OrderID:         o.ID(),
		PickupAddress:   restaurant.Address,
		DeliveryAddress: o.DeliveryAddress(),
		Fare:            o.Fare(),
		CustomerNotes:   o.DeliveryNote(),
	}
	span.SetAttributes(attribute.String("trip.fare", req.Fare.String()))

	if err = d.drivers.InitiateAssignment(ctx, req); err != nil {
		return fmt.Errorf("initiate driver assignment: %w", err)
	}

	d.logger.InfoContext(ctx, "driver assignment requested",
		"order_id", o.ID().String(), "pickup", req.PickupAddress, "fare", req.Fare.String())
	return nil
}

func (d *StatusEffectDispatcher) startSpan(ctx context.Context, name string, o *order.Order) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("order.id", o.ID().String()),
		attribute.String("order.status", o.Status().String()),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
