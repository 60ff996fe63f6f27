package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when attempting to create an order without items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrOrderNumberIsRequired is returned when attempting to create an order
	// without an order number.
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")

	// ErrDuplicateOrderItem is returned when two items share a (product, size) pair.
	ErrDuplicateOrderItem = errors.New("order items must not repeat a product and size pair")

	// ErrAlreadyFinalized is returned for any transition attempted on a completed order.
	ErrAlreadyFinalized = errors.New("order is already completed and cannot change status")

	// ErrAlreadyCancelled is returned when cancelling an order that is already
	// cancelled. Repeated cancellation is an error, never a silent no-op.
	ErrAlreadyCancelled = errors.New("order is already cancelled")
)

// Order represents a placed customer order. It is the aggregate root that
// manages the order lifecycle from placement through completion or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must contain at least one item; no two items share a (product, size) pair
//   - Monetary totals are computed once at creation: finalAmount = subtotal + shippingCost
//   - Status transitions follow the state machine in Status, guarded by the
//     requester's role
//
// The items, prices and address are immutable snapshots of checkout time.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-readable unique order reference
	orderNumber string

	// userID references the ordering user, nil for guest checkout
	userID *kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// items are the order lines snapshotted at checkout
	items []Item

	// subtotal is the sum of all line totals
	subtotal kernel.Money

	// shippingCost is the shipping fee applied at checkout
	shippingCost kernel.Money

	// finalAmount is subtotal + shippingCost, fixed at creation
	finalAmount kernel.Money

	// address holds the shipping and contact details
	address Address

	// notes are free-form customer notes
	notes string

	// createdAt is the placement timestamp
	createdAt time.Time

	// guard ensures the order was properly constructed
	guard guard.ConstructorGuard
}

// NewOrder creates a new pending Order. The subtotal is computed from the item
// line totals and finalAmount = subtotal + shippingCost; both are fixed for the
// lifetime of the order.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	userID *kernel.UUID,
	items []Item,
	shippingCost kernel.Money,
	address Address,
	notes string,
) (*Order, error) {
	subtotal := kernel.Zero()
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	return RestoreOrder(
		id,
		orderNumber,
		userID,
		items,
		subtotal,
		shippingCost,
		subtotal.Add(shippingCost),
		Pending,
		address,
		notes,
		time.Now().UTC(),
	)
}

// RestoreOrder reconstructs an Order aggregate from persistent storage with its
// stored totals, status and timestamp.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	userID *kernel.UUID,
	items []Item,
	subtotal kernel.Money,
	shippingCost kernel.Money,
	finalAmount kernel.Money,
	status Status,
	address Address,
	notes string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		subtotal:     subtotal,
		shippingCost: shippingCost,
		finalAmount:  finalAmount,
		notes:        notes,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setUserID(userID),
		o.setItems(items),
		o.setStatus(status),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// UserID returns the ordering user's ID, nil for guest checkout.
func (o *Order) UserID() *kernel.UUID {
	return o.userID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order lines.
func (o *Order) Items() []Item {
	return o.items
}

// Subtotal returns the sum of all line totals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// ShippingCost returns the shipping fee applied at checkout.
func (o *Order) ShippingCost() kernel.Money {
	return o.shippingCost
}

// FinalAmount returns subtotal + shippingCost as fixed at creation.
func (o *Order) FinalAmount() kernel.Money {
	return o.finalAmount
}

// Address returns the shipping and contact details.
func (o *Order) Address() Address {
	return o.address
}

// Notes returns the customer's free-form notes.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsOwnedBy reports whether the order belongs to the given user.
// Guest orders are owned by nobody.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID != nil && o.userID.IsEqual(userID)
}

// ChangeStatus transitions the order to newStatus on behalf of the given role.
//
// The state machine allows Pending -> Completed and Pending -> Cancelled only;
// Completed and Cancelled are terminal, and repeating the current status is
// always rejected. Guards:
//   - any transition on a completed order fails with ErrAlreadyFinalized
//   - cancelling a cancelled order fails with ErrAlreadyCancelled
//   - plain users may only cancel, and only while the order is pending
//
// A successful transition into Cancelled obliges the caller to restock the
// order's items.
func (o *Order) ChangeStatus(newStatus Status, role Role) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	switch o.status {
	case Completed:
		return ErrAlreadyFinalized
	case Cancelled:
		if newStatus == Cancelled {
			return ErrAlreadyCancelled
		}
		return &ForbiddenTransitionError{From: o.status, To: newStatus, Role: role}
	case Pending:
		if newStatus == Pending {
			return &ForbiddenTransitionError{From: o.status, To: newStatus, Role: role}
		}
		if role != RoleAdmin && newStatus != Cancelled {
			return &ForbiddenTransitionError{From: o.status, To: newStatus, Role: role}
		}
		o.status = newStatus
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidStatus, o.status)
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID *kernel.UUID) error {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return err
		}
	}
	o.userID = userID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.key()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateOrderItem, item.key())
		}
		seen[item.key()] = struct{}{}
	}

	o.items = items
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}
