package order

import (
	"errors"
	"fmt"
	"strings"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one ordered line. The unit price and product name are snapshots
// taken when the order was placed and never change afterwards.
type Item struct {
	id          kernel.UUID
	productID   kernel.UUID
	productName string
	unitPrice   kernel.Money
	quantity    int
	note        string

	isConstructed bool
}

// NewItem creates an order line with a fresh identifier.
func NewItem(productID kernel.UUID, productName string, unitPrice kernel.Money, quantity int, note string) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), productID, productName, unitPrice, quantity, note)
}

// RestoreItem rebuilds a persisted order line.
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
	note string,
) (*Item, error) {
	item := &Item{
		note:          note,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setProductName(productName),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

func (i *Item) ProductName() string {
	return i.productName
}

func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) Note() string {
	return i.note
}

// LineTotal is unit price times quantity.
func (i *Item) LineTotal() kernel.Money {
	total, err := i.unitPrice.Mul(i.quantity)
	if err != nil {
		// quantity is validated at construction
		return kernel.ZeroMoney()
	}
	return total
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	i.productID = id
	return nil
}

func (i *Item) setProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.productName = name
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
