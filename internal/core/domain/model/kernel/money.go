package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/pkg/errs"
)

// priceTolerance is the maximum difference at which two amounts are still
// considered equal when comparing client-supplied totals against computed ones.
var priceTolerance = decimal.NewFromFloat(0.01)

// ErrMoneyIsNegative indicates an attempt to construct a negative monetary amount.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount must not be negative")

// Money is a value object representing a non-negative monetary amount.
// It wraps a decimal to avoid binary floating point drift in price arithmetic.
// Money is immutable; arithmetic methods return new values.
//
// The zero value is a valid zero amount, so Money can be used directly in
// aggregates without a constructor guard.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromFloat(99.90)
//	total := price.Mul(3)
//	fmt.Println(total.String()) // "299.7"
type Money struct {
	amount decimal.Decimal
}

// Zero returns a zero monetary amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money from a decimal amount.
// Returns ErrMoneyIsNegative for negative amounts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromFloat creates a Money from a float64 amount.
// Returns ErrMoneyIsNegative for negative amounts.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MustMoneyFromFloat creates a Money from a float64 amount and panics on error.
// Intended for tests and static configuration values only.
func MustMoneyFromFloat(amount float64) Money {
	m, err := NewMoneyFromFloat(amount)
	if err != nil {
		panic(fmt.Sprintf("invalid money amount %f: %v", amount, err))
	}
	return m
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for presentation purposes.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul returns the amount multiplied by an integer quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are exactly equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether the amount is strictly less than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterOrEqual reports whether the amount is greater than or equal to other.
func (m Money) GreaterOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// EqualsWithinTolerance reports whether two amounts differ by at most 0.01.
// Used to compare client-supplied expected totals against computed totals,
// absorbing rounding differences from client-side arithmetic.
func (m Money) EqualsWithinTolerance(other Money) bool {
	return m.amount.Sub(other.amount).Abs().LessThanOrEqual(priceTolerance)
}
