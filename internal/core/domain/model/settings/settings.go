// Package settings implements the store settings aggregate: a singleton,
// lazily-created configuration document holding the shipping cost and the
// free-shipping threshold. At most one settings row is active at a time;
// the persistence adapter enforces the singleton with an idempotent upsert
// so lazy creation is safe across multiple server instances.
package settings

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

// Defaults applied when no active settings exist yet.
const (
	defaultShippingCost          = 50
	defaultFreeShippingThreshold = 500
)

// ErrSettingsIsNotConstructed is returned when using improperly initialized Settings.
var ErrSettingsIsNotConstructed = errors.New("Settings must be created via NewDefaultSettings constructor")

// Settings holds the active store configuration consumed by the order workflow:
// the flat shipping cost and the subtotal threshold above which shipping is free.
type Settings struct {
	// id uniquely identifies the settings document
	id kernel.UUID
	// shippingCost is the flat shipping fee for orders below the threshold
	shippingCost kernel.Money
	// freeShippingThreshold is the subtotal at which shipping becomes free (inclusive)
	freeShippingThreshold kernel.Money
	// isActive marks this document as the one in effect
	isActive bool
	// guard ensures the settings were properly constructed
	guard guard.ConstructorGuard
}

// NewDefaultSettings creates an active settings document with the hard-coded
// defaults. Used for lazy first-read initialization.
func NewDefaultSettings(id kernel.UUID) (*Settings, error) {
	return RestoreSettings(
		id,
		kernel.MustMoneyFromFloat(defaultShippingCost),
		kernel.MustMoneyFromFloat(defaultFreeShippingThreshold),
		true,
	)
}

// RestoreSettings reconstructs a settings document from persistent storage.
func RestoreSettings(
	id kernel.UUID,
	shippingCost kernel.Money,
	freeShippingThreshold kernel.Money,
	isActive bool,
) (*Settings, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Settings{
		id:                    id,
		shippingCost:          shippingCost,
		freeShippingThreshold: freeShippingThreshold,
		isActive:              isActive,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the settings were created through a constructor.
func (s *Settings) Validate() error {
	if s == nil {
		return ErrSettingsIsNotConstructed
	}
	return s.guard.Validate(ErrSettingsIsNotConstructed)
}

// ID returns the settings document's unique identifier.
func (s *Settings) ID() kernel.UUID {
	return s.id
}

// ShippingCost returns the flat shipping fee.
func (s *Settings) ShippingCost() kernel.Money {
	return s.shippingCost
}

// FreeShippingThreshold returns the subtotal at which shipping becomes free.
func (s *Settings) FreeShippingThreshold() kernel.Money {
	return s.freeShippingThreshold
}

// IsActive reports whether this document is the configuration in effect.
func (s *Settings) IsActive() bool {
	return s.isActive
}
