package services

import (
	"fmt"

	"storefront/internal/core/domain/model/product"
)

// InsufficientStockError indicates that a product cannot cover the requested
// quantity for a size. It carries both numbers so the client can adjust the cart.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	SizeName    string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s size %q: requested %d, available %d",
		e.ProductName, e.SizeName, e.Requested, e.Available)
}

// Availability is the result of a stock resolution: how many units exist and
// whether they cover the requested quantity.
type Availability struct {
	Available  int
	Sufficient bool
}

// StockResolver determines whether sufficient stock exists for an order line,
// independent of how sizes happen to be represented on the product. Both the
// creation path and the cancellation/restock path resolve stock through this
// service so their views of availability cannot diverge.
type StockResolver struct{}

// NewStockResolver creates a new StockResolver instance.
func NewStockResolver() StockResolver {
	return StockResolver{}
}

// Resolve reports availability of the given size on a product. The size name is
// normalized before lookup; a missing entry means 0 units. An empty size name
// resolves against the total stock across all sizes ("any size" order).
// Resolve never mutates the product.
func (StockResolver) Resolve(p *product.Product, sizeName string, quantity int) Availability {
	available := p.Available(sizeName)
	return Availability{
		Available:  available,
		Sufficient: available >= quantity,
	}
}
