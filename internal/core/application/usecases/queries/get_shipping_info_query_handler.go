package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/settings"

	"gorm.io/gorm"
)

// GetShippingInfoQueryHandler retrieves the active shipping configuration.
// The read path never creates the settings row; when none exists yet it
// answers with the defaults and leaves lazy creation to the checkout path.
type GetShippingInfoQueryHandler struct {
	db *gorm.DB
}

// NewGetShippingInfoQueryHandler creates a handler for shipping configuration
// queries.
func NewGetShippingInfoQueryHandler(db *gorm.DB) GetShippingInfoQueryHandler {
	return GetShippingInfoQueryHandler{db: db}
}

// Handle executes the query.
func (h GetShippingInfoQueryHandler) Handle(
	ctx context.Context,
	query GetShippingInfoQuery,
) (GetShippingInfoQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShippingInfoQueryResponse{}, err
	}

	var response GetShippingInfoQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT shipping_cost, free_shipping_threshold
		FROM settings
		WHERE is_active
		LIMIT 1
	`).Row()

	err := row.Scan(&response.ShippingCost, &response.FreeShippingThreshold)
	if errors.Is(err, sql.ErrNoRows) {
		defaults, defErr := settings.NewDefaultSettings(kernel.NewUUID())
		if defErr != nil {
			return GetShippingInfoQueryResponse{}, defErr
		}
		return GetShippingInfoQueryResponse{
			ShippingCost:          defaults.ShippingCost().Float64(),
			FreeShippingThreshold: defaults.FreeShippingThreshold().Float64(),
		}, nil
	}
	if err != nil {
		return GetShippingInfoQueryResponse{}, err
	}

	return response, nil
}
