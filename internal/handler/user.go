package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/doctors-portal/internal/auth"
	"github.com/iliyamo/doctors-portal/internal/model"
	"github.com/iliyamo/doctors-portal/internal/repository"
)

// UserHandler serves account endpoints: listing, the admin flag probe, the
// self-service profile upsert that doubles as the identity-establishing step,
// and the admin grant.
type UserHandler struct {
	Users    repository.UserStore
	Secret   string
	TokenTTL time.Duration
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users repository.UserStore, secret string, ttl time.Duration) *UserHandler {
	return &UserHandler{Users: users, Secret: secret, TokenTTL: ttl}
}

// List handles GET /user.  Requires a verified identity.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.All(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error retrieving users"})
	}
	return c.JSON(http.StatusOK, users)
}

// AdminFlag handles GET /admin/:email.  Unknown accounts report false rather
// than an error.
func (h *UserHandler) AdminFlag(c echo.Context) error {
	email := c.Param("email")
	u, err := h.Users.FindByEmail(c.Request().Context(), email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusOK, echo.Map{"admin": false})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error retrieving user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": u.IsAdmin()})
}

// Upsert handles PUT /user/:email.  It writes the supplied profile fields
// onto the account, creating it when absent, and issues a fresh access token
// for the email.  The role field is stripped from the body: elevation only
// happens through the admin grant endpoint.
func (h *UserHandler) Upsert(c echo.Context) error {
	email := c.Param("email")
	profile := map[string]any{}
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	delete(profile, "role")
	delete(profile, "email")

	if err := h.Users.Upsert(c.Request().Context(), email, profile); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error saving user"})
	}
	token, err := auth.IssueToken(h.Secret, email, h.TokenTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error issuing token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "token": token})
}

// Elevate handles PUT /user/admin/:email.  Reachable only through the
// verified + elevated middleware chain.
func (h *UserHandler) Elevate(c echo.Context) error {
	email := c.Param("email")
	err := h.Users.SetRole(c.Request().Context(), email, model.RoleAdmin)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error updating role"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
