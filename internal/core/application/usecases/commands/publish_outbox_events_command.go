package commands

import (
	"errors"
	"fmt"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

const (
	MinOutboxBatchSize = 1
	MaxOutboxBatchSize = 1000
)

var ErrPublishOutboxEventsCommandIsNotConstructed = errors.New(
	"PublishOutboxEventsCommand must be created via NewPublishOutboxEventsCommand constructor",
)

// PublishOutboxEventsCommand relays one batch of pending outbox messages to the broker.
type PublishOutboxEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOutboxEventsCommand(batchSize int) (PublishOutboxEventsCommand, error) {
	if batchSize < MinOutboxBatchSize || batchSize > MaxOutboxBatchSize {
		return PublishOutboxEventsCommand{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"batch size", batchSize, MinOutboxBatchSize, MaxOutboxBatchSize,
			fmt.Errorf("%d is outside the allowed batch size", batchSize),
		)
	}
	return PublishOutboxEventsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c PublishOutboxEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxEventsCommandIsNotConstructed)
}

func (c PublishOutboxEventsCommand) BatchSize() int {
	return c.batchSize
}
