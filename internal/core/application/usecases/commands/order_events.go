package commands

import (
	"encoding/json"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEventPayload is the body of every order event written to the outbox.
type OrderEventPayload struct {
	OrderID        string  `json:"order_id"`
	ProfileID      string  `json:"profile_id"`
	RestaurantID   string  `json:"restaurant_id"`
	DriverID       *string `json:"driver_id,omitempty"`
	PreviousStatus string  `json:"previous_status,omitempty"`
	Status         string  `json:"status"`
	PaymentStatus  string  `json:"payment_status"`
	Total          string  `json:"total"`
}

func newOrderEvent(eventType string, o *order.Order, previous order.Status, at time.Time) (ports.OutboxMessage, error) {
	payload := OrderEventPayload{
		OrderID:        o.ID().String(),
		ProfileID:      o.ProfileID(),
		RestaurantID:   o.RestaurantID().String(),
		PreviousStatus: previous.String(),
		Status:         o.Status().String(),
		PaymentStatus:  o.PaymentStatus().String(),
		Total:          o.Total().String(),
	}
	if id := o.DriverID(); id != nil {
		s := id.String()
		payload.DriverID = &s
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		AggregateID: o.ID(),
		EventType:   eventType,
		Payload:     body,
		CreatedAt:   at,
	}, nil
}
