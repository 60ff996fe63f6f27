package order

import "fmt"

// Role identifies who is requesting a status transition. The cancellation guard
// branches on an explicit role tag rather than ad hoc boolean flags so the state
// machine's guard conditions stay auditable.
type Role string

const (
	// RoleUser is a plain customer. Users may only cancel their own pending orders.
	RoleUser Role = "user"
	// RoleAdmin is a back-office operator with full transition rights
	// within the state machine.
	RoleAdmin Role = "admin"
)

// RoleFromString parses a role tag supplied by the authentication layer.
// Unknown values fall back to RoleUser, the least privileged role.
func RoleFromString(value string) Role {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// ForbiddenTransitionError indicates a status transition that the state machine
// rejects for the requesting role.
type ForbiddenTransitionError struct {
	From Status
	To   Status
	Role Role
}

func (e *ForbiddenTransitionError) Error() string {
	return fmt.Sprintf("transition from %s to %s is not permitted for role %s", e.From, e.To, e.Role)
}
