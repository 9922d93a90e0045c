package kernel

import (
	"fmt"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned by Validate on a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney, MoneyFromString or ZeroMoney")

// Money is a non-negative amount in the service's single settlement currency.
// Arithmetic is exact (decimal based); the type never holds a negative value.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("42500.50")
//	line, _ := price.Mul(3)
//	total := line.Add(deliveryFee)
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates that amount is not negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}
	if err := m.setAmount(amount); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MoneyFromString parses a decimal literal such as "15000" or "12.75".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(amount)
}

// MoneyFromInt is a shorthand for whole amounts.
func MoneyFromInt(v int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(v))
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate reports whether the value was built through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Sub returns m - other and fails when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// Mul returns m multiplied by a positive quantity.
func (m Money) Mul(quantity int) (Money, error) {
	if quantity <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

// IsEqual compares amounts numerically, so 10 and 10.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount without trailing zeros.
func (m Money) String() string {
	return m.amount.String()
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%s is negative", amount.String()))
	}
	m.amount = amount
	return nil
}
