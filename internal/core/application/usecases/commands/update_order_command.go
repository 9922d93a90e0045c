package commands

import (
	"errors"
	"strings"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
	ErrUpdateIsEmpty = errs.NewValueIsRequiredError("at least one field to update")
)

// OrderPatch lists the fields a caller wants to change. Nil means "leave as is".
// Status and PaymentStatus are raw values and are parsed by NewUpdateOrderCommand.
type OrderPatch struct {
	Status          *string
	PaymentStatus   *string
	DriverID        *kernel.UUID
	DeliveryAddress *string
	DeliveryNote    *string
}

// UpdateOrderCommand is a partial update of one order. A status change and the
// other field edits travel together and are accepted or rejected as a whole.
//
// Example:
//
//	status := "restaurant_accepted"
//	cmd, err := NewUpdateOrderCommand(orderID, OrderPatch{Status: &status})
//	if err != nil {
//	    return err // unknown status, blank address, ...
//	}
//	updated, err := handler.Handle(ctx, cmd)
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	status          *order.Status
	paymentStatus   *order.PaymentStatus
	driverID        *kernel.UUID
	deliveryAddress *string
	deliveryNote    *string

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID kernel.UUID, patch OrderPatch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		deliveryNote: patch.DeliveryNote,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(patch.Status),
		cmd.setPaymentStatus(patch.PaymentStatus),
		cmd.setDriverID(patch.DriverID),
		cmd.setDeliveryAddress(patch.DeliveryAddress),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	if cmd.isEmpty() {
		return UpdateOrderCommand{}, ErrUpdateIsEmpty
	}

	return cmd, nil
}

// NewCancelOrderCommand is an update that requests the cancelled status.
func NewCancelOrderCommand(orderID kernel.UUID) (UpdateOrderCommand, error) {
	status := order.Cancelled.String()
	return NewUpdateOrderCommand(orderID, OrderPatch{Status: &status})
}

// NewAssignDriverCommand attaches a driver and moves the order to finding_driver.
func NewAssignDriverCommand(orderID kernel.UUID, driverID kernel.UUID) (UpdateOrderCommand, error) {
	status := order.FindingDriver.String()
	return NewUpdateOrderCommand(orderID, OrderPatch{Status: &status, DriverID: &driverID})
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested status, or nil when the status is untouched.
func (c UpdateOrderCommand) Status() *order.Status {
	return c.status
}

func (c UpdateOrderCommand) PaymentStatus() *order.PaymentStatus {
	return c.paymentStatus
}

func (c UpdateOrderCommand) DriverID() *kernel.UUID {
	return c.driverID
}

func (c UpdateOrderCommand) DeliveryAddress() *string {
	return c.deliveryAddress
}

func (c UpdateOrderCommand) DeliveryNote() *string {
	return c.deliveryNote
}

func (c UpdateOrderCommand) isEmpty() bool {
	return c.status == nil && c.paymentStatus == nil && c.driverID == nil &&
		c.deliveryAddress == nil && c.deliveryNote == nil
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setStatus(raw *string) error {
	if raw == nil {
		return nil
	}
	status, err := order.ParseStatus(*raw)
	if err != nil {
		return err
	}
	c.status = &status
	return nil
}

func (c *UpdateOrderCommand) setPaymentStatus(raw *string) error {
	if raw == nil {
		return nil
	}
	paymentStatus, err := order.ParsePaymentStatus(*raw)
	if err != nil {
		return err
	}
	c.paymentStatus = &paymentStatus
	return nil
}

func (c *UpdateOrderCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driver id", err)
	}
	id := *driverID
	c.driverID = &id
	return nil
}

func (c *UpdateOrderCommand) setDeliveryAddress(address *string) error {
	if address == nil {
		return nil
	}
	if strings.TrimSpace(*address) == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	c.deliveryAddress = address
	return nil
}
