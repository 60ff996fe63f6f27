package product

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// Domain errors for product operations.
var (
	// ErrNameIsRequired is returned when attempting to create a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
	// ErrDuplicateSize is returned when two size entries normalize to the same name.
	ErrDuplicateSize = errors.New("size names must be unique within a product")
)

// Product represents a catalog product in the system. It is the aggregate root
// managing the product's pricing and per-size stock.
//
// Business rules:
//   - Product must have a valid UUID and a non-empty name
//   - The discounted price only applies when present and lower than the list price
//   - Size names are normalized (lowercased, trimmed) and unique within a product
//   - Stock counts never go negative
//   - Soft-deleted products are excluded from ordering
//
// Example usage:
//
//	price, _ := kernel.NewMoneyFromFloat(100)
//	size, _ := product.NewSizeStock(kernel.NewUUID(), "M", 5)
//	p, err := product.NewProduct(kernel.NewUUID(), "Linen Shirt", price, nil, []*product.SizeStock{size})
//	if err != nil {
//	    // Handle construction error
//	}
type Product struct {
	// id uniquely identifies the product
	id kernel.UUID
	// name is the display name of the product
	name string
	// price is the list unit price
	price kernel.Money
	// priceAfterDiscount is the discounted unit price, nil when no discount applies
	priceAfterDiscount *kernel.Money
	// sizes holds the per-size stock entries
	sizes []*SizeStock
	// isDeleted marks the product as soft-deleted
	isDeleted bool
	// guard ensures the product was properly constructed
	guard guard.ConstructorGuard
}

// NewProduct creates a new Product with the specified parameters.
// This is the only way to create a valid Product instance.
func NewProduct(
	id kernel.UUID,
	name string,
	price kernel.Money,
	priceAfterDiscount *kernel.Money,
	sizes []*SizeStock,
) (*Product, error) {
	return RestoreProduct(id, name, price, priceAfterDiscount, sizes, false)
}

// RestoreProduct reconstructs a Product aggregate from persistent storage,
// including its soft-delete flag.
func RestoreProduct(
	id kernel.UUID,
	name string,
	price kernel.Money,
	priceAfterDiscount *kernel.Money,
	sizes []*SizeStock,
	isDeleted bool,
) (*Product, error) {
	p := &Product{
		price:              price,
		priceAfterDiscount: priceAfterDiscount,
		isDeleted:          isDeleted,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setSizes(sizes),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the list unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// PriceAfterDiscount returns the discounted unit price, or nil when no discount is set.
func (p *Product) PriceAfterDiscount() *kernel.Money {
	return p.priceAfterDiscount
}

// IsDeleted reports whether the product is soft-deleted.
func (p *Product) IsDeleted() bool {
	return p.isDeleted
}

// Sizes returns the per-size stock entries.
func (p *Product) Sizes() []*SizeStock {
	return p.sizes
}

// EffectivePrice returns the unit price a buyer actually pays: the discounted
// price when one is set and lower than the list price, the list price otherwise.
func (p *Product) EffectivePrice() kernel.Money {
	if p.priceAfterDiscount != nil && p.priceAfterDiscount.LessThan(p.price) {
		return *p.priceAfterDiscount
	}
	return p.price
}

// Available returns the number of units in stock for the given size name.
// The name is normalized before lookup; an unknown size has 0 units available.
// An empty size name sums the stock across all sizes (an "any size" order).
func (p *Product) Available(sizeName string) int {
	normalized := NormalizeSize(sizeName)
	if normalized == "" {
		total := 0
		for _, s := range p.sizes {
			total += s.Count()
		}
		return total
	}

	for _, s := range p.sizes {
		if s.Name() == normalized {
			return s.Count()
		}
	}
	return 0
}

// findSize returns the stock entry with the given normalized name, or nil.
func (p *Product) findSize(normalized string) *SizeStock {
	for _, s := range p.sizes {
		if s.Name() == normalized {
			return s
		}
	}
	return nil
}

// RestockOutcome describes how a restock operation was applied to the aggregate.
type RestockOutcome int

const (
	// RestockSkipped means no stock entry could take the returned units.
	RestockSkipped RestockOutcome = iota
	// RestockExact means the units were added to the matching size entry.
	RestockExact
	// RestockFallback means the size entry was gone and the units were added
	// to the product's first size entry instead.
	RestockFallback
)

// Restock returns previously decremented units to the product's stock.
// The matching size entry receives the units; when the size entry no longer
// exists the first size entry takes them instead, so cancelled stock is never
// lost outright. Callers should surface fallback and skipped outcomes as
// warnings since both indicate the catalog changed under an open order.
func (p *Product) Restock(sizeName string, quantity int) (RestockOutcome, error) {
	if quantity <= 0 {
		return RestockSkipped, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if entry := p.findSize(NormalizeSize(sizeName)); entry != nil {
		entry.add(quantity)
		return RestockExact, nil
	}

	if len(p.sizes) > 0 {
		p.sizes[0].add(quantity)
		return RestockFallback, nil
	}

	return RestockSkipped, nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setSizes(sizes []*SizeStock) error {
	seen := make(map[string]struct{}, len(sizes))
	for _, s := range sizes {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, ok := seen[s.Name()]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSize, s.Name())
		}
		seen[s.Name()] = struct{}{}
	}
	p.sizes = sizes
	return nil
}
