package services

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/settings"
)

// ShippingQuote is the shipping cost decision for a given subtotal.
type ShippingQuote struct {
	Cost   kernel.Money
	IsFree bool
}

// ShippingCalculator applies the free-shipping threshold rule. It is used both
// inside order creation and for the standalone pre-checkout quote endpoint.
type ShippingCalculator struct{}

// NewShippingCalculator creates a new ShippingCalculator instance.
func NewShippingCalculator() ShippingCalculator {
	return ShippingCalculator{}
}

// Calculate returns the shipping cost for a subtotal: zero when the subtotal
// reaches the free-shipping threshold (inclusive), the configured flat cost
// otherwise.
func (ShippingCalculator) Calculate(subtotal kernel.Money, s *settings.Settings) ShippingQuote {
	if subtotal.GreaterOrEqual(s.FreeShippingThreshold()) {
		return ShippingQuote{Cost: kernel.Zero(), IsFree: true}
	}
	return ShippingQuote{Cost: s.ShippingCost(), IsFree: false}
}
