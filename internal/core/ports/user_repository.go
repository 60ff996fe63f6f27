package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// UserRepository is the order workflow's view of the user store. Account
// management and authentication live outside this workflow; the only question
// asked here is whether a referenced user exists.
type UserRepository interface {
	// Exists reports whether a user with the given ID exists.
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}
