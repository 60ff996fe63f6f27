package settingsrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetOrCreateActive returns the active settings document, lazily creating one
// with default values when none exists. The insert ignores conflicts and the
// row is re-read afterwards, so concurrent first reads across server
// instances converge on a single active document.
func (r *GormSettingsRepository) GetOrCreateActive(ctx context.Context) (*settings.Settings, error) {
	active, err := r.getActive(ctx)
	if err == nil {
		return active, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults, err := settings.NewDefaultSettings(kernel.NewUUID())
	if err != nil {
		return nil, err
	}

	dto := fromDomain(defaults)
	if err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error; err != nil {
		return nil, err
	}

	return r.getActive(ctx)
}

func (r *GormSettingsRepository) getActive(ctx context.Context) (*settings.Settings, error) {
	var dto SettingsDTO
	err := r.db.WithContext(ctx).
		Order("id").
		First(&dto, "is_active = true").Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}
