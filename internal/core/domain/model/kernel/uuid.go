package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object for aggregates and entities.
// It wraps github.com/google/uuid so the domain model never handles raw
// identifier strings or bytes directly.
//
// The zero value is invalid; identifiers come from NewUUID for fresh
// aggregates, UUIDFromString for client-supplied IDs, or UUIDFromBytes when
// rehydrating from the database.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses an identifier from its string form, typically a path
// parameter or a request body field.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds an identifier from a 16-byte slice, the form the
// postgres uuid columns scan into. The nil UUID is rejected so a zeroed
// column cannot masquerade as a constructed identifier.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// String returns the canonical xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, which the repository DTOs store
// in uuid columns.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two identifiers are the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
