package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetMyOrdersQueryIsNotConstructed = errors.New(
		"GetMyOrdersQuery must be created via NewGetMyOrdersQuery constructor",
	)
)

// GetMyOrdersQuery retrieves the order history of a single user, for the
// "my orders" page. Guest orders carry no user reference and never show up
// here.
type GetMyOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMyOrdersQuery creates an order history query for the given user.
func NewGetMyOrdersQuery(rawUserID string) (GetMyOrdersQuery, error) {
	userID, err := kernel.UUIDFromString(rawUserID)
	if err != nil {
		return GetMyOrdersQuery{}, errs.NewObjectNotFoundErrorWithCause("user", rawUserID, err)
	}

	return GetMyOrdersQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMyOrdersQueryIsNotConstructed)
}

// UserID returns the owning user's identifier.
func (q GetMyOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// GetMyOrdersQueryResponse is a user's order history, newest first.
type GetMyOrdersQueryResponse struct {
	Orders []OrderSummaryResponse
}
