// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// SettingsRepoFactory provides access to the settings repository within a transaction.
	SettingsRepoFactory interface {
		SettingsRepository() ports.SettingsRepository
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// CheckoutUoW manages transactions for order creation, which touches orders,
	// products, settings, and users in a single transaction so the stock
	// decrement cannot diverge from order persistence.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		SettingsRepoFactory
		UserRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderStockUoW manages transactions spanning orders and product stock.
	// Used by status transitions and deletions that restock inventory.
	OrderStockUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	// OrderStockUoWFactory creates new order/stock unit of work instances.
	OrderStockUoWFactory interface {
		Create() OrderStockUoW
	}
)
