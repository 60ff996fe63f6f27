package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMyOrdersQueryHandler retrieves a user's order history from the database.
type GetMyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetMyOrdersQueryHandler creates a handler for order history queries.
func NewGetMyOrdersQueryHandler(db *gorm.DB) GetMyOrdersQueryHandler {
	return GetMyOrdersQueryHandler{db: db}
}

// Handle executes the history query. An unknown user simply has no orders;
// existence is not checked here.
func (h GetMyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetMyOrdersQuery,
) (GetMyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMyOrdersQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			full_name,
			email,
			status,
			(SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id),
			final_amount,
			created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return GetMyOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var summary OrderSummaryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&summary.OrderNumber,
			&summary.FullName,
			&summary.Email,
			&summary.Status,
			&summary.ItemCount,
			&summary.FinalAmount,
			&summary.CreatedAt,
		)
		if err != nil {
			return GetMyOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetMyOrdersQueryResponse{}, idErr
		}
		summary.ID = orderID
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return GetMyOrdersQueryResponse{}, err
	}

	return GetMyOrdersQueryResponse{Orders: orders}, nil
}
