package ports

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
)

// TripRequest asks the Driver service to find a driver for an order.
// Coordinates are optional; addresses are always present.
type TripRequest struct {
	OrderID             kernel.UUID
	PickupAddress       string
	PickupCoordinates   *kernel.Coordinates
	DeliveryAddress     string
	DeliveryCoordinates *kernel.Coordinates
	Fare                kernel.Money
	CustomerNotes       string
}

// DriverClient talks to the Driver service.
type DriverClient interface {
	// InitiateAssignment creates a trip for the order. It returns once the
	// Driver service has accepted the request, not when a driver is found.
	InitiateAssignment(ctx context.Context, req TripRequest) error
}
