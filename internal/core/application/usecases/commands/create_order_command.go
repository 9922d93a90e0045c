package commands

import (
	"errors"
	"fmt"
	"strings"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// OrderLine is one requested item as submitted by the customer.
type OrderLine struct {
	ProductID   kernel.UUID
	ProductName string
	UnitPrice   kernel.Money
	Quantity    int
	Note        string
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("profile-42", restaurantID,
//	    "12 Nguyen Hue, District 1", "call on arrival", "cash",
//	    []OrderLine{{ProductID: pid, ProductName: "Pho bo", UnitPrice: price, Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	profileID       string
	restaurantID    kernel.UUID
	deliveryAddress string
	deliveryNote    string
	paymentMethod   string
	lines           []OrderLine

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	profileID string,
	restaurantID kernel.UUID,
	deliveryAddress string,
	deliveryNote string,
	paymentMethod string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		deliveryNote:  deliveryNote,
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProfileID(profileID),
		cmd.setRestaurantID(restaurantID),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ProfileID() string {
	return c.profileID
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CreateOrderCommand) DeliveryNote() string {
	return c.deliveryNote
}

func (c CreateOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	return append([]OrderLine(nil), c.lines...)
}

func (c *CreateOrderCommand) setProfileID(profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return errs.NewValueIsRequiredError("profile id")
	}
	c.profileID = profileID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant id", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	c.deliveryAddress = address
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrItemsAreRequired
	}
	for idx, line := range lines {
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", idx),
				fmt.Errorf("%d is not greater than 0", line.Quantity),
			)
		}
	}
	c.lines = append([]OrderLine(nil), lines...)
	return nil
}
