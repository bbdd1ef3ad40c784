package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/doctors-portal/internal/repository"
)

// RequireAdmin returns a middleware enforcing role elevation.  It re-reads
// the caller's user record on every request so a revoked admin loses access
// immediately; the stale-role window of a claims-based check is the reason
// the role never rides inside the token.  A missing user record is reported
// as forbidden rather than not found so the response leaks nothing about
// account existence.  Must run after RequireAuth.
func RequireAdmin(users repository.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := CurrentIdentity(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
			}
			u, err := users.FindByEmail(c.Request().Context(), ident.Email)
			if err != nil || !u.IsAdmin() {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(c)
		}
	}
}
