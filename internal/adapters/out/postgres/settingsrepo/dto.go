// Package settingsrepo persists the store settings singleton.
package settingsrepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/settings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettingsDTO represents the database structure for the store settings document.
type SettingsDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShippingCost          decimal.Decimal `gorm:"type:decimal(10,2)"`
	FreeShippingThreshold decimal.Decimal `gorm:"type:decimal(10,2)"`
	// Partial unique index: at most one row may be active, which is what lets
	// the ON CONFLICT DO NOTHING insert in GetOrCreateActive stay idempotent
	// under concurrent first reads.
	IsActive bool `gorm:"index:idx_settings_single_active,unique,where:is_active"`
}

// TableName specifies the database table name for settings entities.
func (SettingsDTO) TableName() string {
	return "settings"
}

// fromDomain converts a settings aggregate to its database representation.
func fromDomain(aggregate *settings.Settings) SettingsDTO {
	return SettingsDTO{
		ID:                    aggregate.ID().Bytes(),
		ShippingCost:          aggregate.ShippingCost().Amount(),
		FreeShippingThreshold: aggregate.FreeShippingThreshold().Amount(),
		IsActive:              aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a settings aggregate.
func toDomain(dto SettingsDTO) (*settings.Settings, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shippingCost, err := kernel.NewMoney(dto.ShippingCost)
	if err != nil {
		return nil, err
	}
	freeShippingThreshold, err := kernel.NewMoney(dto.FreeShippingThreshold)
	if err != nil {
		return nil, err
	}

	return settings.RestoreSettings(id, shippingCost, freeShippingThreshold, dto.IsActive)
}
