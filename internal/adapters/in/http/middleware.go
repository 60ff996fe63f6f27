package http

import (
	"net/http"

	"storefront/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Identity is resolved by the upstream auth layer and forwarded through
// headers. UserID is empty for anonymous callers.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

const identityContextKey = "storefront.identity"

// Identity describes the caller of the current request.
type Identity struct {
	UserID string
	Role   order.Role
}

// IsAnonymous reports whether the request carried no user identity.
func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

// ResolveIdentity reads the caller identity headers and stores the result in
// the request context for handlers and guards downstream.
func ResolveIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity := Identity{
				UserID: ctx.Request().Header.Get(HeaderUserID),
				Role:   order.RoleFromString(ctx.Request().Header.Get(HeaderUserRole)),
			}
			ctx.Set(identityContextKey, identity)
			return next(ctx)
		}
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if identityFrom(ctx).IsAnonymous() {
				return ctx.JSON(http.StatusUnauthorized, Envelope{
					Success: false,
					Message: "authentication required",
				})
			}
			return next(ctx)
		}
	}
}

// RequireAdmin rejects requests whose caller does not hold the admin role.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity := identityFrom(ctx)
			if identity.IsAnonymous() {
				return ctx.JSON(http.StatusUnauthorized, Envelope{
					Success: false,
					Message: "authentication required",
				})
			}
			if identity.Role != order.RoleAdmin {
				return ctx.JSON(http.StatusForbidden, Envelope{
					Success: false,
					Message: "admin role required",
				})
			}
			return next(ctx)
		}
	}
}

func identityFrom(ctx echo.Context) Identity {
	if identity, ok := ctx.Get(identityContextKey).(Identity); ok {
		return identity
	}
	return Identity{}
}
