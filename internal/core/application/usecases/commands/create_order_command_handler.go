package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
//
// The whole workflow runs inside a single transaction: precondition checks
// (user, shipping info, stock, price), order persistence, and the stock
// decrement. The decrement is a conditional update ("subtract where count >=
// quantity"), so a concurrent order racing for the last units fails the
// transaction instead of overselling, and an order is only ever persisted
// together with its stock reservation.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	stock      services.StockResolver
	shipping   services.ShippingCalculator
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a CheckoutUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory CheckoutUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		stock:      services.NewStockResolver(),
		shipping:   services.NewShippingCalculator(),
	}
}

// resolvedLine pairs a cart line with the product loaded for it, so the
// decrement step operates on the same snapshot the stock check used.
type resolvedLine struct {
	line    services.CartLine
	product *product.Product
}

// Handle processes the checkout command and returns the created order.
//
// The steps run in a fixed order, each a hard gate: user check, shipping info,
// per-line stock resolution and pricing, shipping cost, expected-total
// comparison, order persistence, and finally the conditional stock decrement.
// Any failure rolls the transaction back, so no partial order and no partial
// decrement can ever be observed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userID, err := h.verifyUser(ctx, uow, cmd.UserID())
	if err != nil {
		return nil, err
	}

	shipping := cmd.Shipping()
	address, err := order.NewAddress(
		shipping.FullName,
		shipping.StreetAddress,
		shipping.Country,
		shipping.State,
		shipping.City,
		shipping.Phone,
		shipping.Email,
	)
	if err != nil {
		return nil, err
	}

	items, resolved, err := h.priceCart(ctx, uow, cmd.Lines())
	if err != nil {
		return nil, err
	}

	subtotal := kernel.Zero()
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	activeSettings, err := uow.SettingsRepository().GetOrCreateActive(ctx)
	if err != nil {
		return nil, err
	}
	quote := h.shipping.Calculate(subtotal, activeSettings)
	finalAmount := subtotal.Add(quote.Cost)

	if expected := cmd.ExpectedTotal(); expected != nil {
		expectedAmount, moneyErr := kernel.NewMoneyFromFloat(*expected)
		if moneyErr != nil || !finalAmount.EqualsWithinTolerance(expectedAmount) {
			return nil, &PriceMismatchError{Expected: *expected, Computed: finalAmount.Float64()}
		}
	}

	placed, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewOrderNumber(),
		userID,
		items,
		quote.Cost,
		address,
		cmd.Notes(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = h.decrementStock(ctx, uow, resolved); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

// verifyUser checks that a referenced user exists. Guest checkout (empty ID)
// passes through with a nil user reference.
func (h *CreateOrderCommandHandler) verifyUser(
	ctx context.Context, uow CheckoutUoW, rawUserID string,
) (*kernel.UUID, error) {
	if rawUserID == "" {
		return nil, nil
	}

	userID, err := kernel.UUIDFromString(rawUserID)
	if err != nil {
		return nil, errs.NewObjectNotFoundErrorWithCause("user", rawUserID, err)
	}

	exists, err := uow.UserRepository().Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("user", rawUserID)
	}

	return &userID, nil
}

// priceCart resolves every cart line against the catalog: the product must
// exist and not be soft-deleted, the requested size must have sufficient stock,
// and the line is priced at the product's effective (discount-aware) price.
func (h *CreateOrderCommandHandler) priceCart(
	ctx context.Context, uow CheckoutUoW, lines []services.CartLine,
) ([]order.Item, []resolvedLine, error) {
	productRepo := uow.ProductRepository()
	items := make([]order.Item, 0, len(lines))
	resolved := make([]resolvedLine, 0, len(lines))

	for _, line := range lines {
		productID, err := kernel.UUIDFromString(line.ProductID)
		if err != nil {
			return nil, nil, errs.NewObjectNotFoundErrorWithCause("product", line.ProductID, err)
		}

		p, err := productRepo.Get(ctx, productID)
		if err != nil {
			return nil, nil, err
		}

		availability := h.stock.Resolve(p, line.SizeName, line.Quantity)
		if !availability.Sufficient {
			return nil, nil, &services.InsufficientStockError{
				ProductID:   p.ID().String(),
				ProductName: p.Name(),
				SizeName:    product.NormalizeSize(line.SizeName),
				Requested:   line.Quantity,
				Available:   availability.Available,
			}
		}

		item, err := order.NewItem(productID, p.Name(), line.SizeName, line.Quantity, p.EffectivePrice())
		if err != nil {
			return nil, nil, err
		}

		items = append(items, item)
		resolved = append(resolved, resolvedLine{line: line, product: p})
	}

	return items, resolved, nil
}

// decrementStock subtracts the ordered quantities with conditional updates.
// A failed condition means stock moved since the check a moment ago; the whole
// transaction fails with InsufficientStock rather than overselling.
func (h *CreateOrderCommandHandler) decrementStock(
	ctx context.Context, uow CheckoutUoW, resolved []resolvedLine,
) error {
	productRepo := uow.ProductRepository()

	for _, r := range resolved {
		for _, d := range allocateDecrements(r.product, r.line) {
			applied, err := productRepo.DecrementStock(ctx, r.product.ID(), d.sizeName, d.quantity)
			if err != nil {
				return err
			}
			if !applied {
				return &services.InsufficientStockError{
					ProductID:   r.product.ID().String(),
					ProductName: r.product.Name(),
					SizeName:    d.sizeName,
					Requested:   d.quantity,
					Available:   r.product.Available(d.sizeName),
				}
			}
		}
	}

	return nil
}

type sizeDecrement struct {
	sizeName string
	quantity int
}

// allocateDecrements maps a cart line onto concrete size entries. A line with a
// size decrements that size; an "any size" line is spread greedily across the
// entries that held stock when the product was resolved.
func allocateDecrements(p *product.Product, line services.CartLine) []sizeDecrement {
	normalized := product.NormalizeSize(line.SizeName)
	if normalized != "" {
		return []sizeDecrement{{sizeName: normalized, quantity: line.Quantity}}
	}

	decrements := make([]sizeDecrement, 0, 1)
	remaining := line.Quantity
	for _, s := range p.Sizes() {
		if remaining == 0 {
			break
		}
		take := min(s.Count(), remaining)
		if take > 0 {
			decrements = append(decrements, sizeDecrement{sizeName: s.Name(), quantity: take})
			remaining -= take
		}
	}
	return decrements
}
