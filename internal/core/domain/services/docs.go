// Package services contains stateless domain services of the order workflow:
// operations that span aggregates or act on raw checkout input before any
// aggregate exists.
//
// CartValidator rejects structurally invalid or duplicate cart submissions
// before any stock or pricing work. StockResolver is the single source of truth
// for size-level availability, shared by the creation and restock paths so the
// two can never diverge. ShippingCalculator applies the free-shipping threshold
// rule both inside order creation and for standalone pre-checkout quotes.
//
// All services are pure: they never touch persistence and never mutate their
// inputs.
package services
