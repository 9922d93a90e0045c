package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order would be placed without lines.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root of the service. It records who ordered what from
// which restaurant, how much it costs, where it goes and where in its lifecycle it is.
//
// Order follows these invariants:
//   - Must have a valid identifier, restaurant and at least one item
//   - Money amounts are never negative and total = subtotal + delivery fee - discount
//   - A new order starts in Pending or PendingRestaurant
//   - Field changes go through methods; timestamps are owned by the store
//
// The aggregate does not decide whether a status change is allowed. That check
// belongs to the transition policy, which callers consult before ChangeStatus.
type Order struct {
	id           kernel.UUID
	profileID    string
	restaurantID kernel.UUID

	// driverID is nil until a driver has been attached
	driverID *kernel.UUID

	deliveryAddress string
	deliveryNote    string

	subtotal    kernel.Money
	deliveryFee kernel.Money
	discount    kernel.Money
	total       kernel.Money

	paymentStatus PaymentStatus
	paymentMethod string

	// status may hold a legacy value when the order was restored from storage
	status Status

	createdAt time.Time
	updatedAt time.Time

	items []*Item

	isConstructed bool
}

// NewOrder places a new order. The subtotal is the sum of the item line totals,
// the discount starts at zero and payment starts as Unpaid.
//
// Example:
//
//	item, _ := order.NewItem(productID, "Pho bo", price, 2, "no onions")
//	fee, _ := kernel.MoneyFromInt(15000)
//	o, err := order.NewOrder(kernel.NewUUID(), "profile-42", restaurantID,
//	    "12 Nguyen Hue, District 1", "", "cash", []*order.Item{item}, fee, order.PendingRestaurant)
func NewOrder(
	id kernel.UUID,
	profileID string,
	restaurantID kernel.UUID,
	deliveryAddress string,
	deliveryNote string,
	paymentMethod string,
	items []*Item,
	deliveryFee kernel.Money,
	initialStatus Status,
) (*Order, error) {
	o := &Order{
		profileID:     profileID,
		deliveryNote:  deliveryNote,
		paymentMethod: paymentMethod,
		paymentStatus: Unpaid,
		discount:      kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProfileID(profileID),
		o.setRestaurantID(restaurantID),
		o.setDeliveryAddress(deliveryAddress),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
		o.setInitialStatus(initialStatus),
	); err != nil {
		return nil, err
	}

	o.recalculate()
	return o, nil
}

// Snapshot carries the persisted state of an order back into the domain.
type Snapshot struct {
	ID              kernel.UUID
	ProfileID       string
	RestaurantID    kernel.UUID
	DriverID        *kernel.UUID
	DeliveryAddress string
	DeliveryNote    string
	Subtotal        kernel.Money
	DeliveryFee     kernel.Money
	Discount        kernel.Money
	Total           kernel.Money
	PaymentStatus   PaymentStatus
	PaymentMethod   string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []*Item
}

// RestoreOrder rebuilds an aggregate from storage. Unlike NewOrder it accepts
// any stored status, including values this version of the service no longer knows.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		profileID:       s.ProfileID,
		deliveryAddress: s.DeliveryAddress,
		deliveryNote:    s.DeliveryNote,
		paymentStatus:   s.PaymentStatus,
		paymentMethod:   s.PaymentMethod,
		status:          s.Status,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setRestaurantID(s.RestaurantID),
		s.Subtotal.Validate(),
		s.DeliveryFee.Validate(),
		s.Discount.Validate(),
		s.Total.Validate(),
	); err != nil {
		return nil, err
	}

	if s.DriverID != nil {
		if err := s.DriverID.Validate(); err != nil {
			return nil, err
		}
		driverID := *s.DriverID
		o.driverID = &driverID
	}

	o.subtotal = s.Subtotal
	o.deliveryFee = s.DeliveryFee
	o.discount = s.Discount
	o.total = s.Total
	o.items = append(make([]*Item, 0, len(s.Items)), s.Items...)

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// ProfileID identifies the party that placed the order.
func (o *Order) ProfileID() string {
	return o.profileID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// DriverID returns nil while no driver is attached.
func (o *Order) DriverID() *kernel.UUID {
	if o.driverID == nil {
		return nil
	}
	id := *o.driverID
	return &id
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryNote is empty when the customer left none.
func (o *Order) DeliveryNote() string {
	return o.deliveryNote
}

func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

func (o *Order) Discount() kernel.Money {
	return o.discount
}

func (o *Order) Total() kernel.Money {
	return o.total
}

// Fare is what the driver is offered for the trip: subtotal plus delivery fee.
func (o *Order) Fare() kernel.Money {
	return o.subtotal.Add(o.deliveryFee)
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Items returns a copy of the item slice; the items themselves are immutable.
func (o *Order) Items() []*Item {
	return append(make([]*Item, 0, len(o.items)), o.items...)
}

// ChangeStatus records next as the current status. The value must be a known
// status; whether the move is allowed is checked by the caller beforehand.
func (o *Order) ChangeStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) ChangePaymentStatus(next PaymentStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	o.paymentStatus = next
	return nil
}

// AssignDriver attaches (or replaces) the driver carrying the order.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	o.driverID = &driverID
	return nil
}

func (o *Order) ChangeDeliveryAddress(address string) error {
	return o.setDeliveryAddress(address)
}

func (o *Order) ChangeDeliveryNote(note string) {
	o.deliveryNote = note
}

func (o *Order) recalculate() {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.subtotal = subtotal

	total, err := subtotal.Add(o.deliveryFee).Sub(o.discount)
	if err != nil {
		total = kernel.ZeroMoney()
	}
	o.total = total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProfileID(profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return errs.NewValueIsRequiredError("profile id")
	}
	o.profileID = profileID
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant id", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
	}
	o.items = append(make([]*Item, 0, len(items)), items...)
	return nil
}

func (o *Order) setDeliveryFee(fee kernel.Money) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	o.deliveryFee = fee
	return nil
}

func (o *Order) setInitialStatus(status Status) error {
	if status != Pending && status != PendingRestaurant {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a valid initial status", string(status)),
		)
	}
	o.status = status
	return nil
}
