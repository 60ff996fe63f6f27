package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler retrieves a single order detail view from the
// database: the order row plus all of its item rows.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for order detail queries.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the detail query. An absent order yields ObjectNotFoundError.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	response, err := h.scanOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	items, err := h.scanItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	response.Items = items

	return response, nil
}

func (h GetOrderByIDQueryHandler) scanOrder(
	ctx context.Context, orderID kernel.UUID,
) (GetOrderByIDQueryResponse, error) {
	var response GetOrderByIDQueryResponse
	var id uuid.UUID
	var userID uuid.NullUUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			user_id,
			status,
			subtotal,
			shipping_cost,
			final_amount,
			full_name,
			street_address,
			country,
			state,
			city,
			phone,
			email,
			notes,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&response.OrderNumber,
		&userID,
		&response.Status,
		&response.Subtotal,
		&response.ShippingCost,
		&response.FinalAmount,
		&response.Shipping.FullName,
		&response.Shipping.StreetAddress,
		&response.Shipping.Country,
		&response.Shipping.State,
		&response.Shipping.City,
		&response.Shipping.Phone,
		&response.Shipping.Email,
		&response.Notes,
		&response.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	responseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	response.ID = responseID

	if userID.Valid {
		ownerID, idErr := kernel.UUIDFromBytes(userID.UUID[:])
		if idErr != nil {
			return GetOrderByIDQueryResponse{}, idErr
		}
		response.UserID = &ownerID
	}

	return response, nil
}

func (h GetOrderByIDQueryHandler) scanItems(
	ctx context.Context, orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			product_name,
			size_name,
			quantity,
			unit_price,
			line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		var productID uuid.UUID

		err = rows.Scan(
			&productID,
			&item.ProductName,
			&item.SizeName,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
		)
		if err != nil {
			return nil, err
		}

		itemProductID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ProductID = itemProductID
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
