package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetOrderByIDQueryIsNotConstructed = errors.New(
		"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
	)
)

// GetOrderByIDQuery retrieves a single order with its lines and shipping
// details.
type GetOrderByIDQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for one order. A malformed ID is
// reported as not found, matching how lookups of absent orders behave.
func NewGetOrderByIDQuery(rawOrderID string) (GetOrderByIDQuery, error) {
	orderID, err := kernel.UUIDFromString(rawOrderID)
	if err != nil {
		return GetOrderByIDQuery{}, errs.NewObjectNotFoundErrorWithCause("order", rawOrderID, err)
	}

	return GetOrderByIDQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemResponse is one line of an order detail view.
type OrderItemResponse struct {
	ProductID   kernel.UUID
	ProductName string
	SizeName    string
	Quantity    int
	UnitPrice   float64
	LineTotal   float64
}

// ShippingDetailsResponse carries the shipping and contact fields of an order
// detail view, verbatim as captured at checkout.
type ShippingDetailsResponse struct {
	FullName      string
	StreetAddress string
	Country       string
	State         string
	City          string
	Phone         string
	Email         string
}

// GetOrderByIDQueryResponse is the full order detail view.
type GetOrderByIDQueryResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	UserID       *kernel.UUID
	Status       string
	Items        []OrderItemResponse
	Subtotal     float64
	ShippingCost float64
	FinalAmount  float64
	Shipping     ShippingDetailsResponse
	Notes        string
	CreatedAt    time.Time
}
