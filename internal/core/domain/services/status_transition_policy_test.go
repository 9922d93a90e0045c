package services_test

import (
	"bytes"
	"log/slog"
	"testing"

	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/core/domain/services"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicy(buf *bytes.Buffer) services.StatusTransitionPolicy {
	return services.NewStatusTransitionPolicy(slog.New(slog.NewTextHandler(buf, nil)))
}

func TestStatusTransitionPolicy_CanTransition(t *testing.T) {
	var buf bytes.Buffer
	policy := newPolicy(&buf)

	tests := []struct {
		name      string
		current   order.Status
		requested order.Status
		want      bool
	}{
		{"restaurant accepts", order.PendingRestaurant, order.RestaurantAccepted, true},
		{"restaurant rejects", order.PendingRestaurant, order.RestaurantRejected, true},
		{"driver accepts", order.RestaurantAccepted, order.DriverAccepted, true},
		{"driver rejects", order.RestaurantAccepted, order.DriverRejected, true},
		{"classic confirm", order.Pending, order.Confirmed, true},
		{"skip straight to driver search", order.Confirmed, order.FindingDriver, true},
		{"deliver", order.Delivering, order.Delivered, true},
		{"cancel while preparing", order.Preparing, order.Cancelled, true},
		{"cannot skip acceptance", order.PendingRestaurant, order.DriverAccepted, false},
		{"cannot leave rejected", order.RestaurantRejected, order.RestaurantAccepted, false},
		{"cannot reopen delivered", order.Delivered, order.Pending, false},
		{"cannot revive cancelled", order.Cancelled, order.Pending, false},
		{"cannot repeat status", order.Ready, order.Ready, false},
		{"cannot cross workflows", order.Pending, order.RestaurantAccepted, false},
		{"cannot request unknown status", order.Pending, order.Status("shipped"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanTransition(tt.current, tt.requested))
		})
	}
}

func TestStatusTransitionPolicy_UnknownCurrentStatus(t *testing.T) {
	t.Run("should deny and log a warning", func(t *testing.T) {
		var buf bytes.Buffer
		policy := newPolicy(&buf)

		allowed := policy.CanTransition(order.Status("awaiting_pickup"), order.Cancelled)

		assert.False(t, allowed)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "awaiting_pickup")
	})

	t.Run("should deny every target", func(t *testing.T) {
		var buf bytes.Buffer
		policy := newPolicy(&buf)

		for _, to := range order.AllStatuses() {
			assert.False(t, policy.CanTransition(order.Status("legacy"), to))
		}
	})
}

func TestStatusTransitionPolicy_Check(t *testing.T) {
	var buf bytes.Buffer
	policy := newPolicy(&buf)

	t.Run("should return nil when allowed", func(t *testing.T) {
		require.NoError(t, policy.Check(order.FindingDriver, order.Delivering))
	})

	t.Run("should name both statuses when denied", func(t *testing.T) {
		err := policy.Check(order.Delivered, order.Cancelled)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "delivered", transitionErr.Current)
		assert.Equal(t, "cancelled", transitionErr.Requested)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestStatusTransitionPolicy_NilLogger(t *testing.T) {
	policy := services.NewStatusTransitionPolicy(nil)

	assert.False(t, policy.CanTransition(order.Status("x"), order.Cancelled))
}
