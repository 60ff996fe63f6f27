package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Items are immutable after creation; only the status changes in practice.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// including all of its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and its items permanently.
	// Used by the admin hard-delete path only.
	Delete(ctx context.Context, id kernel.UUID) error
}
