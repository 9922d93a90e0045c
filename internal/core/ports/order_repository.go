// Package ports defines the contracts between the order service core and its
// adapters: persistence, the restaurant and driver collaborators, and event publishing.
package ports

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Items are stored and loaded together with their order.
type OrderRepository interface {
	// Add persists a new order and its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Items are immutable and not rewritten.
	// The store refreshes updated_at.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns *errs.ObjectNotFoundError when no order matches.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the surrounding transaction ends.
	// Concurrent updates of the same order are serialised through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and its items.
	// Returns *errs.ObjectNotFoundError when no order matches.
	Delete(ctx context.Context, id kernel.UUID) error
}
