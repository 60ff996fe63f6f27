package commands

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand is a command to permanently remove an order.
// Deletion is an administrative operation; the HTTP layer enforces the role.
type DeleteOrderCommand struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a new DeleteOrderCommand.
func NewDeleteOrderCommand(orderID string) (DeleteOrderCommand, error) {
	if orderID == "" {
		return DeleteOrderCommand{}, errs.NewValueIsRequiredError("orderID")
	}

	return DeleteOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the target order's identifier as supplied by the caller.
func (c *DeleteOrderCommand) OrderID() string {
	return c.orderID
}
