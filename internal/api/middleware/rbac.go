package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// RBAC enforces role-based access control in place: an authenticated user
// without any of the allowed roles gets an access-denied response, never a
// redirect. Distinct from Auth, which handles "not logged in at all".
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if !user.HasAnyRole(allowedRoles...) {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

// Can enforces one of the user model's capability predicates, so route
// permissions and the domain's permission matrix cannot drift apart. Use
// with method expressions, e.g. Can((*domain.User).CanDelete).
func Can(allowed func(*domain.User) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed(CurrentUser(c)) {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
