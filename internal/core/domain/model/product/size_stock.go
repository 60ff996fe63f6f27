package product

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// Domain errors for size stock entries.
var (
	// ErrSizeNameIsRequired is returned when a size entry is created with an empty name.
	ErrSizeNameIsRequired = errs.NewValueIsRequiredError("size name")
	// ErrSizeStockIsNotConstructed is returned when using an improperly initialized SizeStock.
	ErrSizeStockIsNotConstructed = errors.New("SizeStock must be created via NewSizeStock constructor")
)

// NormalizeSize returns the canonical form of a size name: lowercased and trimmed.
// All size lookups and uniqueness checks operate on normalized names, so "M",
// " m " and "m" all refer to the same size variant.
func NormalizeSize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SizeStock is a child entity of the Product aggregate holding the available
// unit count for a single size variant. Size names are stored normalized and
// are unique within a product.
type SizeStock struct {
	// id uniquely identifies the size entry
	id kernel.UUID
	// name is the normalized size name ("s", "m", "xl", ...)
	name string
	// count is the number of units currently in stock (never negative)
	count int
	// guard ensures the entry was properly constructed
	guard guard.ConstructorGuard
}

// NewSizeStock creates a size entry with a normalized name and a non-negative count.
func NewSizeStock(id kernel.UUID, name string, count int) (*SizeStock, error) {
	entry := &SizeStock{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setName(name),
		entry.setCount(count),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreSizeStock reconstructs a size entry from persistent storage.
func RestoreSizeStock(id kernel.UUID, name string, count int) (*SizeStock, error) {
	return NewSizeStock(id, name, count)
}

// Validate ensures the entry was created through its constructor.
func (s *SizeStock) Validate() error {
	if s == nil {
		return ErrSizeStockIsNotConstructed
	}
	return s.guard.Validate(ErrSizeStockIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (s *SizeStock) ID() kernel.UUID {
	return s.id
}

// Name returns the normalized size name.
func (s *SizeStock) Name() string {
	return s.name
}

// Count returns the number of units in stock for this size.
func (s *SizeStock) Count() int {
	return s.count
}

// add increases the count. Used by the aggregate's restock operation.
func (s *SizeStock) add(quantity int) {
	s.count += quantity
}

func (s *SizeStock) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *SizeStock) setName(name string) error {
	normalized := NormalizeSize(name)
	if normalized == "" {
		return ErrSizeNameIsRequired
	}
	s.name = normalized
	return nil
}

func (s *SizeStock) setCount(count int) error {
	if count < 0 {
		return errs.NewValueIsInvalidErrorWithCause("count",
			errors.New("stock count must not be negative"))
	}
	s.count = count
	return nil
}
