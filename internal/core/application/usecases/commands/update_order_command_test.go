package commands_test

import (
	"testing"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("should parse status and payment status", func(t *testing.T) {
		cmd, err := commands.NewUpdateOrderCommand(orderID, commands.OrderPatch{
			Status:        ptr("restaurant_accepted"),
			PaymentStatus: ptr("paid"),
		})

		require.NoError(t, err)
		assert.Equal(t, order.RestaurantAccepted, *cmd.Status())
		assert.Equal(t, order.Paid, *cmd.PaymentStatus())
		assert.Nil(t, cmd.DriverID())
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(orderID, commands.OrderPatch{Status: ptr("shipped")})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a blank address", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(orderID, commands.OrderPatch{DeliveryAddress: ptr("  ")})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject an empty patch", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(orderID, commands.OrderPatch{})

		assert.ErrorIs(t, err, commands.ErrUpdateIsEmpty)
	})

	t.Run("should accept clearing the note", func(t *testing.T) {
		cmd, err := commands.NewUpdateOrderCommand(orderID, commands.OrderPatch{DeliveryNote: ptr("")})

		require.NoError(t, err)
		assert.Empty(t, *cmd.DeliveryNote())
	})

	t.Run("should reject a missing order id", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(kernel.UUID{}, commands.OrderPatch{Status: ptr("cancelled")})

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestNewCancelOrderCommand(t *testing.T) {
	cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID())

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, *cmd.Status())
}

func TestNewAssignDriverCommand(t *testing.T) {
	driverID := kernel.NewUUID()

	cmd, err := commands.NewAssignDriverCommand(kernel.NewUUID(), driverID)

	require.NoError(t, err)
	assert.Equal(t, order.FindingDriver, *cmd.Status())
	assert.True(t, cmd.DriverID().IsEqual(driverID))

	_, err = commands.NewAssignDriverCommand(kernel.NewUUID(), kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
