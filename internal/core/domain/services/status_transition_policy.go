package services

import (
	"log/slog"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
)

// StatusTransitionPolicy is the single authority on status changes.
//
// Business rules:
//   - Only pairs listed in the order state machine are allowed
//   - Self-transitions and moves out of terminal statuses are denied
//   - A stored status outside the known set is denied and reported as a
//     data-integrity problem; it never slips through as "anything goes"
//
// The policy is stateless apart from its logger and safe for concurrent use.
//
// Example usage:
//
//	policy := services.NewStatusTransitionPolicy(logger)
//	if err := policy.Check(o.Status(), order.Cancelled); err != nil {
//	    return err // *errs.InvalidTransitionError
//	}
type StatusTransitionPolicy struct {
	logger *slog.Logger
}

func NewStatusTransitionPolicy(logger *slog.Logger) StatusTransitionPolicy {
	if logger == nil {
		logger = slog.Default()
	}
	return StatusTransitionPolicy{logger: logger.With("component", "status_transition_policy")}
}

// CanTransition reports whether current may move to requested.
func (p StatusTransitionPolicy) CanTransition(current, requested order.Status) bool {
	parsedCurrent, err := order.ParseStatus(current.String())
	if err != nil {
		p.logger.Warn("order holds an unrecognised status, denying transition",
			"current", current.String(), "requested", requested.String())
		return false
	}

	parsedRequested, err := order.ParseStatus(requested.String())
	if err != nil {
		return false
	}

	return parsedCurrent.CanTransitionTo(parsedRequested)
}

// Check is CanTransition returning a typed error that names both statuses.
func (p StatusTransitionPolicy) Check(current, requested order.Status) error {
	if p.CanTransition(current, requested) {
		return nil
	}
	return errs.NewInvalidTransitionError(current.String(), requested.String())
}
