package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var (
	ErrGetOrderStatsQueryIsNotConstructed = errors.New(
		"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
	)
)

// GetOrderStatsQuery retrieves aggregate order figures for the back-office
// dashboard.
type GetOrderStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a stats query. This is a parameterless query
// over the whole order table.
func NewGetOrderStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// GetOrderStatsQueryResponse summarizes the order book: a count per lifecycle
// status and the revenue over orders that still count (everything except
// cancelled).
type GetOrderStatsQueryResponse struct {
	TotalOrders     int64
	PendingOrders   int64
	CompletedOrders int64
	CancelledOrders int64
	Revenue         float64
}
