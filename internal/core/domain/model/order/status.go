package order

import (
	"fmt"

	"orderservice/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Two workflows share one state machine. The restaurant workflow starts at
// PendingRestaurant and ends once the restaurant or the driver has answered;
// the classic workflow starts at Pending and runs through to Delivered.
// Cancelled is reachable from every non-terminal status.
//
//	pending_restaurant ──> restaurant_accepted ──> driver_accepted
//	        │                      │
//	        └─> restaurant_rejected└─> driver_rejected
//
//	pending ──> confirmed ──> preparing ──> ready ──> finding_driver ──> delivering ──> delivered
//	                │             │                        ^
//	                └─────────────┴────────────────────────┘
//
// Status is string backed because that is how it is stored and exchanged.
// A Status read from storage may hold a value outside the known set; such a
// value fails Validate and has no outgoing transitions.
type Status string

const (
	Pending            Status = "pending"
	Confirmed          Status = "confirmed"
	Preparing          Status = "preparing"
	Ready              Status = "ready"
	FindingDriver      Status = "finding_driver"
	Delivering         Status = "delivering"
	Delivered          Status = "delivered"
	Cancelled          Status = "cancelled"
	PendingRestaurant  Status = "pending_restaurant"
	RestaurantAccepted Status = "restaurant_accepted"
	RestaurantRejected Status = "restaurant_rejected"
	DriverAccepted     Status = "driver_accepted"
	DriverRejected     Status = "driver_rejected"
)

// transitions is the allow-list of the state machine. A pair missing from it
// is denied, so every status absent as a key is terminal.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		PendingRestaurant:  {RestaurantAccepted, RestaurantRejected, Cancelled},
		RestaurantAccepted: {DriverAccepted, DriverRejected, Cancelled},
		Pending:            {Confirmed, Cancelled},
		Confirmed:          {Preparing, FindingDriver, Cancelled},
		Preparing:          {Ready, FindingDriver, Cancelled},
		Ready:              {FindingDriver, Cancelled},
		FindingDriver:      {Delivering, Cancelled},
		Delivering:         {Delivered, Cancelled},
	}
}

// AllStatuses lists the known statuses in declaration order.
func AllStatuses() []Status {
	return []Status{
		Pending, Confirmed, Preparing, Ready, FindingDriver, Delivering, Delivered, Cancelled,
		PendingRestaurant, RestaurantAccepted, RestaurantRejected, DriverAccepted, DriverRejected,
	}
}

// ParseStatus converts a raw value into a known Status.
// It is the only sanctioned way to turn external input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate reports whether s belongs to the known set.
func (s Status) Validate() error {
	for _, known := range AllStatuses() {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves s.
// Unknown values are terminal as well.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// CanTransitionTo reports whether next is an allowed successor of s.
// Self-transitions are never allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Successors returns the statuses reachable from s in one step.
func (s Status) Successors() []Status {
	next := transitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
