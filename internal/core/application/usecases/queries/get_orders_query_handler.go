package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves pages of the order listing from the database.
// The listing reads flat rows; no aggregates are hydrated.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Results are sorted newest first; the
// keyword is matched case-insensitively against the order number and the
// shipping contact fields.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	where, args := buildOrderFilters(query)

	var total int64
	if err := h.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM orders`+where, args...,
	).Scan(&total).Error; err != nil {
		return GetOrdersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
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
		FROM orders`+where+`
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, append(args, query.Limit(), offset)...).Rows()
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0, query.Limit())
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
			return GetOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetOrdersQueryResponse{}, idErr
		}
		summary.ID = orderID
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	return GetOrdersQueryResponse{
		Orders: orders,
		Total:  total,
		Page:   query.Page(),
		Limit:  query.Limit(),
	}, nil
}

// buildOrderFilters renders the WHERE clause shared by the count and page
// queries.
func buildOrderFilters(query GetOrdersQuery) (string, []any) {
	where := ""
	args := make([]any, 0, 5)

	appendClause := func(clause string) {
		if where == "" {
			where = " WHERE " + clause
			return
		}
		where += " AND " + clause
	}

	if query.Status() != order.Unknown {
		appendClause("status = ?")
		args = append(args, query.Status().String())
	}

	if query.Keyword() != "" {
		appendClause("(order_number ILIKE ? OR full_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?)")
		pattern := "%" + query.Keyword() + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	return where, args
}
