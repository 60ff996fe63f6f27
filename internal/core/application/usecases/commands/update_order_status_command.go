package commands

import (
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is a command to move an order to a new status on
// behalf of an actor. The transition rules themselves live on the Order
// aggregate; the command only captures who asks for what.
type UpdateOrderStatusCommand struct {
	orderID   string
	newStatus order.Status
	actorID   string
	actorRole order.Role

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a new UpdateOrderStatusCommand.
// The raw status string must name a known status.
func NewUpdateOrderStatusCommand(
	orderID string, rawStatus string, actorID string, actorRole order.Role,
) (UpdateOrderStatusCommand, error) {
	if orderID == "" {
		return UpdateOrderStatusCommand{}, errs.NewValueIsRequiredError("orderID")
	}

	newStatus, err := order.StatusFromString(rawStatus)
	if err != nil {
		return UpdateOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	return UpdateOrderStatusCommand{
		orderID:   orderID,
		newStatus: newStatus,
		actorID:   actorID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order's identifier as supplied by the caller.
func (c *UpdateOrderStatusCommand) OrderID() string {
	return c.orderID
}

// NewStatus returns the requested status.
func (c *UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// ActorID returns the identifier of the user performing the change.
func (c *UpdateOrderStatusCommand) ActorID() string {
	return c.actorID
}

// ActorRole returns the role of the user performing the change.
func (c *UpdateOrderStatusCommand) ActorRole() order.Role {
	return c.actorRole
}
