package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// DeleteOrderCommandHandler handles permanent order removal.
//
// Deleting an order that still holds stock (anything not already cancelled)
// returns the quantities to the catalog first, in the same transaction, so the
// units are not lost with the order.
type DeleteOrderCommandHandler struct {
	uowFactory OrderStockUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderStockUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle removes the order. Cancelled orders already restocked on
// cancellation, so only non-cancelled orders restock here.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(cmd.OrderID())
	if err != nil {
		return errs.NewObjectNotFoundErrorWithCause("order", cmd.OrderID(), err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if target.Status() != order.Cancelled {
		if err = restockItems(ctx, uow, target); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Delete(ctx, orderID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
