package services

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/product"
)

// ErrEmptyCart is returned when a cart submission contains no lines.
var ErrEmptyCart = errors.New("cart must contain at least one item")

// InvalidItemError indicates a structurally invalid cart line.
type InvalidItemError struct {
	Index  int
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("cart item %d is invalid: %s", e.Index, e.Reason)
}

// DuplicateItemError indicates two cart lines referencing the same product and
// size. Duplicate lines are rejected outright, never merged; clients must
// adjust the quantity on a single line instead.
type DuplicateItemError struct {
	ProductID string
	SizeName  string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("cart contains the same product and size twice: product %s, size %q",
		e.ProductID, e.SizeName)
}

// CartLine is one raw checkout line as submitted by the client, before any
// catalog lookup has happened.
type CartLine struct {
	ProductID string
	SizeName  string
	Quantity  int
}

// Key returns the duplicate-detection key for the line: the product ID joined
// with the normalized size name.
func (l CartLine) Key() string {
	return l.ProductID + "-" + product.NormalizeSize(l.SizeName)
}

// CartValidator rejects structurally invalid or semantically duplicate cart
// submissions before any stock or pricing work occurs.
type CartValidator struct{}

// NewCartValidator creates a new CartValidator instance.
func NewCartValidator() CartValidator {
	return CartValidator{}
}

// Validate checks a cart submission:
//   - the cart must be non-empty (ErrEmptyCart)
//   - every line must name a product and order at least one unit (InvalidItemError)
//   - no two lines may reference the same product and normalized size
//     (DuplicateItemError)
//
// Validation is pure; the catalog is not consulted here.
func (CartValidator) Validate(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}

	seen := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		if line.ProductID == "" {
			return &InvalidItemError{Index: i, Reason: "productId is required"}
		}
		if line.Quantity < 1 {
			return &InvalidItemError{Index: i, Reason: "quantity must be at least 1"}
		}

		key := line.Key()
		if _, ok := seen[key]; ok {
			return &DuplicateItemError{
				ProductID: line.ProductID,
				SizeName:  product.NormalizeSize(line.SizeName),
			}
		}
		seen[key] = struct{}{}
	}

	return nil
}
