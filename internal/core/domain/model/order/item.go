package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a value object capturing one order line: the product, the chosen size,
// the quantity, and the unit price at the moment the order was placed. Items are
// immutable snapshots; later catalog changes never alter an existing order.
type Item struct {
	productID   kernel.UUID
	productName string
	sizeName    string
	quantity    int
	unitPrice   kernel.Money
	lineTotal   kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates an order line, computing lineTotal = unitPrice × quantity.
// The size name is stored normalized; quantity must be at least 1.
func NewItem(
	productID kernel.UUID,
	productName string,
	sizeName string,
	quantity int,
	unitPrice kernel.Money,
) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		productID:   productID,
		productName: productName,
		sizeName:    product.NormalizeSize(sizeName),
		quantity:    quantity,
		unitPrice:   unitPrice,
		lineTotal:   unitPrice.Mul(quantity),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs an order line from persistent storage with its stored
// line total rather than recomputing it, preserving the original snapshot.
func RestoreItem(
	productID kernel.UUID,
	productName string,
	sizeName string,
	quantity int,
	unitPrice kernel.Money,
	lineTotal kernel.Money,
) (Item, error) {
	item, err := NewItem(productID, productName, sizeName, quantity, unitPrice)
	if err != nil {
		return Item{}, err
	}
	item.lineTotal = lineTotal
	return item, nil
}

// Validate ensures the item was created through its constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the ordered product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product display name snapshot taken at order time.
func (i Item) ProductName() string {
	return i.productName
}

// SizeName returns the normalized size name, empty for an "any size" line.
func (i Item) SizeName() string {
	return i.sizeName
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the effective unit price at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unitPrice × quantity as computed at order time.
func (i Item) LineTotal() kernel.Money {
	return i.lineTotal
}

// key identifies the (product, size) pair for duplicate detection.
func (i Item) key() string {
	return i.productID.String() + "-" + i.sizeName
}
