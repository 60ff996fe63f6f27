package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates as
// seen by the order workflow. Catalog management (create/update/delete) lives
// outside this workflow and is not part of the contract.
type ProductRepository interface {
	// Get retrieves a product by its unique identifier.
	// Soft-deleted products are treated as absent and return ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves a product like Get but row-locks it and its size
	// entries for the remainder of the transaction. The restock path uses it so
	// read-modify-write stock additions cannot lose concurrent decrements.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// DecrementStock atomically subtracts quantity from the named size entry,
	// but only if the entry currently holds at least that many units
	// ("decrement where count >= quantity"). It reports whether a row was
	// updated; false means the stock check would no longer pass and the caller
	// must fail the surrounding operation. The size name must be normalized.
	DecrementStock(ctx context.Context, productID kernel.UUID, sizeName string, quantity int) (bool, error)

	// Update persists changes to an existing product aggregate, including its
	// size entries. Used by the restock path.
	Update(ctx context.Context, aggregate *product.Product) error
}
