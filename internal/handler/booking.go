package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/doctors-portal/internal/middleware"
	"github.com/iliyamo/doctors-portal/internal/model"
	"github.com/iliyamo/doctors-portal/internal/repository"
	"github.com/iliyamo/doctors-portal/internal/service"
)

// BookingHandler serves booking creation, queries and payment reconciliation.
type BookingHandler struct {
	Admission  *service.Admission
	Reconciler *service.Reconciler
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(admission *service.Admission, reconciler *service.Reconciler) *BookingHandler {
	return &BookingHandler{Admission: admission, Reconciler: reconciler}
}

// Create handles POST /booking.  A rejected admission is a 200 with
// success=false and the existing booking, never an error status; that keeps
// business rejection distinguishable from system failure.
func (h *BookingHandler) Create(c echo.Context) error {
	var b model.Booking
	if err := c.Bind(&b); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if b.Treatment == "" || b.Date == "" || b.Slot == "" || b.Patient == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "treatment, date, slot and patient are required"})
	}
	b.Paid = false
	b.TransactionID = ""

	result, err := h.Admission.Create(c.Request().Context(), &b)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error creating booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": result.Admitted,
		"message": result.Message,
		"booking": result.Booking,
	})
}

// List handles GET /booking?patient=P.  The caller may only read their own
// bookings; an admin gets no override.
func (h *BookingHandler) List(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized access"})
	}
	patient := c.QueryParam("patient")
	bookings, err := h.Admission.ListForPatient(c.Request().Context(), patient, ident)
	if errors.Is(err, service.ErrNotOwner) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden access"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error retrieving bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /booking/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.Admission.ByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrBookingNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error retrieving booking"})
	}
	return c.JSON(http.StatusOK, b)
}

// Reconcile handles PATCH /booking/:id.  The body carries the confirmed
// payment details; on success the booking comes back paid with its
// transaction id set.
func (h *BookingHandler) Reconcile(c echo.Context) error {
	var p model.Payment
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if p.TransactionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "transactionId is required"})
	}

	updated, err := h.Reconciler.Reconcile(c.Request().Context(), c.Param("id"), &p)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error reconciling payment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "booking": updated})
}
