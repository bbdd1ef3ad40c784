package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/doctors-portal/internal/model"
	"github.com/iliyamo/doctors-portal/internal/repository"
)

// DoctorHandler serves roster management.  Every route is behind the
// verified + elevated middleware chain.
type DoctorHandler struct {
	Doctors repository.DoctorStore
}

// NewDoctorHandler constructs a DoctorHandler.
func NewDoctorHandler(doctors repository.DoctorStore) *DoctorHandler {
	return &DoctorHandler{Doctors: doctors}
}

// List handles GET /doctor.
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.Doctors.All(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error retrieving doctors"})
	}
	return c.JSON(http.StatusOK, doctors)
}

// Create handles POST /doctor.
func (h *DoctorHandler) Create(c echo.Context) error {
	var d model.Doctor
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if d.Email == "" || d.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name and email are required"})
	}
	if err := h.Doctors.Insert(c.Request().Context(), &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error saving doctor"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "doctor": d})
}

// Delete handles DELETE /doctor/:email.
func (h *DoctorHandler) Delete(c echo.Context) error {
	err := h.Doctors.DeleteByEmail(c.Request().Context(), c.Param("email"))
	if errors.Is(err, repository.ErrDoctorNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "doctor not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error deleting doctor"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
