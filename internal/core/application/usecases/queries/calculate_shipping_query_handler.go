package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/settings"
	"storefront/internal/core/domain/services"

	"gorm.io/gorm"
)

// CalculateShippingQueryHandler estimates shipping for a prospective cart.
// The estimate runs through the same domain calculator as checkout, so the
// quoted figure matches what order placement will charge.
type CalculateShippingQueryHandler struct {
	db         *gorm.DB
	calculator services.ShippingCalculator
}

// NewCalculateShippingQueryHandler creates a handler for shipping estimates.
func NewCalculateShippingQueryHandler(db *gorm.DB) CalculateShippingQueryHandler {
	return CalculateShippingQueryHandler{
		db:         db,
		calculator: services.NewShippingCalculator(),
	}
}

// Handle executes the estimate.
func (h CalculateShippingQueryHandler) Handle(
	ctx context.Context,
	query CalculateShippingQuery,
) (CalculateShippingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculateShippingQueryResponse{}, err
	}

	active, err := h.loadSettings(ctx)
	if err != nil {
		return CalculateShippingQueryResponse{}, err
	}

	quote := h.calculator.Calculate(query.Subtotal(), active)
	total := query.Subtotal().Add(quote.Cost)

	return CalculateShippingQueryResponse{
		Subtotal:     query.Subtotal().Float64(),
		ShippingCost: quote.Cost.Float64(),
		IsFree:       quote.IsFree,
		Total:        total.Float64(),
	}, nil
}

// loadSettings reads the active settings row, falling back to the defaults
// when none exists yet. Like the shipping info query, the read path does not
// create the row.
func (h CalculateShippingQueryHandler) loadSettings(ctx context.Context) (*settings.Settings, error) {
	var shippingCost, freeShippingThreshold float64

	row := h.db.WithContext(ctx).Raw(`
		SELECT shipping_cost, free_shipping_threshold
		FROM settings
		WHERE is_active
		LIMIT 1
	`).Row()

	err := row.Scan(&shippingCost, &freeShippingThreshold)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.NewDefaultSettings(kernel.NewUUID())
	}
	if err != nil {
		return nil, err
	}

	cost, err := kernel.NewMoneyFromFloat(shippingCost)
	if err != nil {
		return nil, err
	}
	threshold, err := kernel.NewMoneyFromFloat(freeShippingThreshold)
	if err != nil {
		return nil, err
	}

	return settings.RestoreSettings(kernel.NewUUID(), cost, threshold, true)
}
