package order

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned when a requested status value is not part of the
// order lifecycle.
var ErrInvalidStatus = errors.New("status is invalid")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──┬──> Completed   (terminal)
//	          └──> Cancelled   (terminal)
//
// Repeating the current status is never a valid transition; in particular,
// cancelling an already-cancelled order is an error, not a no-op.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every created order.
	Pending

	// Completed indicates the order has been fulfilled. Terminal.
	Completed

	// Cancelled indicates the order was cancelled and its stock returned. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses a wire status value ("pending", "completed",
// "cancelled"). Any other value fails with ErrInvalidStatus.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Completed, Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, s)
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed from this status.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}
