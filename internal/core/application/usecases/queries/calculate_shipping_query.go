package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCalculateShippingQueryIsNotConstructed = errors.New(
		"CalculateShippingQuery must be created via NewCalculateShippingQuery constructor",
	)
)

// CalculateShippingQuery computes the shipping cost for a prospective cart
// subtotal, so clients can show the grand total before the order is placed.
//
// Example:
//
//	query, err := NewCalculateShippingQuery(420.50)
//	if err != nil {
//	    return fmt.Errorf("bad subtotal: %w", err)
//	}
//
//	handler := NewCalculateShippingQueryHandler(db)
//	quote, err := handler.Handle(ctx, query)
type CalculateShippingQuery struct {
	subtotal kernel.Money

	guard guard.ConstructorGuard
}

// NewCalculateShippingQuery creates a shipping estimate query for the given
// subtotal. Negative subtotals are rejected.
func NewCalculateShippingQuery(subtotal float64) (CalculateShippingQuery, error) {
	amount, err := kernel.NewMoneyFromFloat(subtotal)
	if err != nil {
		return CalculateShippingQuery{}, errs.NewValueIsInvalidErrorWithCause("subtotal", err)
	}

	return CalculateShippingQuery{
		subtotal: amount,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CalculateShippingQuery) Validate() error {
	return q.guard.Validate(ErrCalculateShippingQueryIsNotConstructed)
}

// Subtotal returns the cart subtotal the estimate is for.
func (q CalculateShippingQuery) Subtotal() kernel.Money {
	return q.subtotal
}

// CalculateShippingQueryResponse is a shipping estimate for a subtotal.
type CalculateShippingQueryResponse struct {
	Subtotal     float64
	ShippingCost float64
	IsFree       bool
	Total        float64
}
