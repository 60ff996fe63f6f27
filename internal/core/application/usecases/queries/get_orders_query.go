// Package queries contains read-only operations against the store's data.
// Query handlers bypass the domain model and read projections straight from
// the database, per the CQRS split used across the application layer.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves a paginated page of orders for the back office.
// Supports filtering by status and a free-text keyword matched against the
// order number and the shipping contact fields.
//
// Example:
//
//	query, err := NewGetOrdersQuery(1, 20, "jane", "pending")
//	if err != nil {
//	    return fmt.Errorf("bad listing request: %w", err)
//	}
//
//	handler := NewGetOrdersQueryHandler(db)
//	page, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	page    int
	limit   int
	keyword string
	status  order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a listing query. Page numbering starts at 1; a
// zero limit falls back to the default page size. rawStatus is empty for no
// status filter.
func NewGetOrdersQuery(page int, limit int, keyword string, rawStatus string) (GetOrdersQuery, error) {
	if page < 1 {
		return GetOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if limit == 0 {
		limit = defaultPageSize
	}
	if limit < 1 || limit > maxPageSize {
		return GetOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageSize)
	}

	status := order.Unknown
	if rawStatus != "" {
		var err error
		status, err = order.StatusFromString(rawStatus)
		if err != nil {
			return GetOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("status", err)
		}
	}

	return GetOrdersQuery{
		page:    page,
		limit:   limit,
		keyword: keyword,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// Keyword returns the free-text filter, empty for none.
func (q GetOrdersQuery) Keyword() string {
	return q.keyword
}

// Status returns the status filter, order.Unknown for none.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

// OrderSummaryResponse is one row of the back-office order listing.
type OrderSummaryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	FullName    string
	Email       string
	Status      string
	ItemCount   int
	FinalAmount float64
	CreatedAt   time.Time
}

// GetOrdersQueryResponse is a page of the order listing plus the total number
// of orders matching the filters, for client-side pagination.
type GetOrdersQueryResponse struct {
	Orders []OrderSummaryResponse
	Total  int64
	Page   int
	Limit  int
}
