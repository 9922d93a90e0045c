package order

import (
	"fmt"

	"orderservice/internal/pkg/errs"
)

// PaymentStatus tracks settlement of an order. It is recorded but not
// interpreted by the lifecycle state machine.
type PaymentStatus string

const (
	Unpaid   PaymentStatus = "unpaid"
	Paid     PaymentStatus = "paid"
	Refunded PaymentStatus = "refunded"
)

// ParsePaymentStatus converts a raw value into a known PaymentStatus.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	p := PaymentStatus(raw)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p PaymentStatus) Validate() error {
	switch p {
	case Unpaid, Paid, Refunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid payment status", string(p)))
	}
}

func (p PaymentStatus) String() string {
	return string(p)
}
