// Package commands contains business operations that modify order state.
// All commands follow a consistent pattern: constructor validation, a unit of
// work around persistence, and outbox events written in the same transaction.
package commands

import (
	"context"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions that change orders and record their events.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate o
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.OutboxRepository().Add(ctx, msg)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW manages transactions of the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// Collaborator interfaces consumed by the handlers.
type (
	// TransitionPolicy decides whether a status change is allowed.
	TransitionPolicy interface {
		Check(current, requested order.Status) error
	}

	// EffectDispatcher schedules the side effects of a committed status change.
	// Dispatch must not block on collaborators.
	EffectDispatcher interface {
		Dispatch(ctx context.Context, o *order.Order, newStatus order.Status)
	}
)
