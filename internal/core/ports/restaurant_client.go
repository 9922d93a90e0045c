package ports

import (
	"context"
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

var (
	// ErrRestaurantNotFound is returned when the Restaurant service answers 404.
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrCollaboratorUnavailable wraps transport failures, timeouts and non-2xx
	// answers from the Restaurant and Driver services.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// Restaurant is the subset of restaurant details the order service relies on.
type Restaurant struct {
	ID      kernel.UUID
	Name    string
	Address string
	Phone   string
}

// RestaurantClient talks to the Restaurant service.
type RestaurantClient interface {
	// GetRestaurant fetches restaurant details by id.
	GetRestaurant(ctx context.Context, id kernel.UUID) (Restaurant, error)

	// EvaluateOrder hands a freshly placed order to the restaurant for acceptance.
	// The verdict arrives later as a status update on the order.
	EvaluateOrder(ctx context.Context, o *order.Order) error
}
