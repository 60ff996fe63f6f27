// Package product implements the Product aggregate of the catalog domain.
//
// A Product is the aggregate root; SizeStock entries are its child entities,
// one per size variant, each holding a non-negative unit count. Size names are
// normalized (lowercased, trimmed) so lookups are insensitive to how clients
// spell a size, and are unique within a product.
//
// The aggregate owns pricing behavior (effective price with optional discount)
// and stock behavior (availability lookup, restock with first-entry fallback).
// Stock decrements on the order-creation path are intentionally not modeled
// here: they must be atomic with respect to the availability check and are
// executed as conditional updates by the persistence adapter.
package product
