package queries

import (
	"context"

	"storefront/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler computes dashboard figures in a single aggregate
// query.
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for order stats queries.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the stats query. Cancelled orders count towards the totals
// but are excluded from revenue.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	var response GetOrderStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COALESCE(SUM(final_amount) FILTER (WHERE status != ?), 0)
		FROM orders
	`,
		order.Pending.String(),
		order.Completed.String(),
		order.Cancelled.String(),
		order.Cancelled.String(),
	).Row()

	err := row.Scan(
		&response.TotalOrders,
		&response.PendingOrders,
		&response.CompletedOrders,
		&response.CancelledOrders,
		&response.Revenue,
	)
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return response, nil
}
