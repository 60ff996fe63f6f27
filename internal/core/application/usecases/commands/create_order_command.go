package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// PriceMismatchError indicates that the total the client expected to pay no
// longer matches the computed total beyond the 0.01 tolerance. It defends
// against stale client-side price caching.
type PriceMismatchError struct {
	Expected float64
	Computed float64
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("order total changed: expected %.2f, computed %.2f", e.Expected, e.Computed)
}

// ShippingInfo carries the raw shipping and contact fields from the checkout
// request. Required-field validation happens in the address value object during
// handling, after the user check, so clients see failures in workflow order.
type ShippingInfo struct {
	FullName      string
	StreetAddress string
	Country       string
	State         string
	City          string
	Phone         string
	Email         string
}

// CreateOrderCommand represents a checkout submission: the cart lines, the
// shipping details, and optionally the ordering user and the total the client
// expects to pay.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(lines, shipping, "please ring twice", userID, &expectedTotal)
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, logger)
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	lines         []services.CartLine
	shipping      ShippingInfo
	notes         string
	userID        string
	expectedTotal *float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a checkout command, running cart validation
// (empty cart, invalid lines, duplicate product/size pairs) up front. userID is
// empty for guest checkout; expectedTotal is nil when the client sends none.
func NewCreateOrderCommand(
	lines []services.CartLine,
	shipping ShippingInfo,
	notes string,
	userID string,
	expectedTotal *float64,
) (CreateOrderCommand, error) {
	if err := services.NewCartValidator().Validate(lines); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		lines:         lines,
		shipping:      shipping,
		notes:         notes,
		userID:        userID,
		expectedTotal: expectedTotal,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Lines returns the validated cart lines.
func (c CreateOrderCommand) Lines() []services.CartLine {
	return c.lines
}

// Shipping returns the raw shipping and contact fields.
func (c CreateOrderCommand) Shipping() ShippingInfo {
	return c.shipping
}

// Notes returns the customer's free-form order notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// UserID returns the ordering user's raw ID, empty for guest checkout.
func (c CreateOrderCommand) UserID() string {
	return c.userID
}

// ExpectedTotal returns the total the client expects to pay, nil when not sent.
func (c CreateOrderCommand) ExpectedTotal() *float64 {
	return c.expectedTotal
}
