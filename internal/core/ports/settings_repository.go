package ports

import (
	"context"

	"storefront/internal/core/domain/model/settings"
)

// SettingsRepository defines the persistence contract for the settings singleton.
type SettingsRepository interface {
	// GetOrCreateActive returns the active settings document, lazily creating
	// one with default values when none exists. The creation is an idempotent
	// upsert, so concurrent first reads across server instances converge on a
	// single active document.
	GetOrCreateActive(ctx context.Context) (*settings.Settings, error)
}
