package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/doctors-portal/internal/repository"
	"github.com/iliyamo/doctors-portal/internal/service"
)

// CatalogHandler serves the treatment catalog and per-date availability.
// Both endpoints are public.
type CatalogHandler struct {
	Services repository.ServiceStore
	Avail    *service.Availability
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(services repository.ServiceStore, avail *service.Availability) *CatalogHandler {
	return &CatalogHandler{Services: services, Avail: avail}
}

// List handles GET /services.  It returns the catalog projected to names.
func (h *CatalogHandler) List(c echo.Context) error {
	names, err := h.Services.Names(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error retrieving services"})
	}
	return c.JSON(http.StatusOK, names)
}

// Available handles GET /available?date=D.  An absent date matches no
// bookings and every service reports its full template.
func (h *CatalogHandler) Available(c echo.Context) error {
	date := c.QueryParam("date")
	services, err := h.Avail.SlotsFor(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error computing availability"})
	}
	return c.JSON(http.StatusOK, services)
}
