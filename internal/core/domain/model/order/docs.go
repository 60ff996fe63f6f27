// Package order implements the Order aggregate of the checkout domain.
//
// An Order is a snapshot of a validated cart: its items carry the unit price and
// line total fixed at checkout, and the monetary totals are never recomputed
// afterwards. The aggregate enforces non-empty carts, unique (product, size)
// pairs, and the status state machine with role-guarded cancellation.
//
// Status transitions follow a small state machine: Pending orders may be
// completed or cancelled, both terminal. Cancelling an already-cancelled order
// is explicitly an error rather than an idempotent no-op, matching the REST
// contract surfaced to clients.
package order
