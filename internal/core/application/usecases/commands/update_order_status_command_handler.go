package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
)

// ErrNotOrderOwner is returned when a user tries to act on an order that
// belongs to someone else.
var ErrNotOrderOwner = errors.New("order belongs to another user")

// UpdateOrderStatusCommandHandler handles status transitions on orders.
//
// A transition into Cancelled returns the order's reserved stock to the
// catalog inside the same transaction, using row locks on the products so a
// concurrent checkout cannot lose the restocked units.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderStockUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status changes.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderStockUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle applies the requested transition. Admins may perform any legal
// transition; plain users may only cancel their own pending orders, and the
// ownership check runs before the transition rules so a foreign order is
// rejected regardless of the requested status.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if cmd.ActorRole() != order.RoleAdmin {
		actorID, idErr := kernel.UUIDFromString(cmd.ActorID())
		if idErr != nil || !target.IsOwnedBy(actorID) {
			return ErrNotOrderOwner
		}
	}

	if err = target.ChangeStatus(cmd.NewStatus(), cmd.ActorRole()); err != nil {
		return err
	}

	if target.Status() == order.Cancelled {
		if err = restockItems(ctx, uow, target); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// restockItems returns an order's quantities to the catalog. Products are
// loaded under a row lock so the read-modify-write cannot race a checkout.
// A product or size that no longer exists is skipped with a warning rather
// than blocking the cancellation.
func restockItems(ctx context.Context, uow OrderStockUoW, target *order.Order) error {
	productRepo := uow.ProductRepository()

	for _, item := range target.Items() {
		p, err := productRepo.GetForUpdate(ctx, item.ProductID())
		if err != nil {
			var notFound *errs.ObjectNotFoundError
			if errors.As(err, &notFound) {
				slog.Warn("restock skipped, product no longer exists",
					"order_id", target.ID().String(),
					"product_id", item.ProductID().String())
				continue
			}
			return err
		}

		outcome, err := p.Restock(item.SizeName(), item.Quantity())
		if err != nil {
			return err
		}

		switch outcome {
		case product.RestockSkipped:
			slog.Warn("restock skipped, size no longer exists",
				"order_id", target.ID().String(),
				"product_id", p.ID().String(),
				"size", item.SizeName())
			continue
		case product.RestockFallback:
			slog.Warn("restock fell back to another size",
				"order_id", target.ID().String(),
				"product_id", p.ID().String(),
				"size", item.SizeName())
		}

		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
