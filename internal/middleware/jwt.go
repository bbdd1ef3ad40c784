package middleware // middleware contains reusable HTTP middleware for the portal

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/doctors-portal/internal/auth"
)

// identityKey is the context key under which RequireAuth stores the verified
// identity for the remainder of request handling.
const identityKey = "identity"

// RequireAuth returns an Echo middleware that verifies the Bearer token and
// stores the resulting Identity in the request context.  A missing header is
// 401; a present but unverifiable token is 403.  Both are terminal and occur
// before any state is touched.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			ident, err := auth.VerifyHeader(secret, header)
			if errors.Is(err, auth.ErrNoCredential) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
			}
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden access"})
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity stored by RequireAuth.  The second
// return is false on routes that skipped authentication.
func CurrentIdentity(c echo.Context) (auth.Identity, bool) {
	ident, ok := c.Get(identityKey).(auth.Identity)
	return ident, ok
}
