// Package guard provides the constructor guard pattern used by commands, queries,
// and domain objects to ensure they are only created through their designated
// constructor functions. A zero-value struct fails validation, which prevents
// accidentally operating on uninitialized objects.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil
// validation error for an object that was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard guards against direct struct initialization. Embed it in a
// struct and set it via NewConstructorGuard inside the constructor; Validate then
// distinguishes constructed instances from zero values.
//
// Example:
//
//	type Money struct {
//	    amount decimal.Decimal
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewMoney(amount decimal.Decimal) (Money, error) {
//	    return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects. For zero-value objects it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
