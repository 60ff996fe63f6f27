package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var (
	ErrGetShippingInfoQueryIsNotConstructed = errors.New(
		"GetShippingInfoQuery must be created via NewGetShippingInfoQuery constructor",
	)
)

// GetShippingInfoQuery retrieves the store's current shipping configuration,
// so clients can display the fee and the free-shipping threshold before
// checkout.
type GetShippingInfoQuery struct {
	guard guard.ConstructorGuard
}

// NewGetShippingInfoQuery creates a shipping configuration query.
func NewGetShippingInfoQuery() GetShippingInfoQuery {
	return GetShippingInfoQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetShippingInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetShippingInfoQueryIsNotConstructed)
}

// GetShippingInfoQueryResponse is the active shipping configuration.
type GetShippingInfoQueryResponse struct {
	ShippingCost          float64
	FreeShippingThreshold float64
}
