package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/doctors-portal/internal/service"
)

// PaymentHandler mints charge intents against the external processor.
type PaymentHandler struct {
	Reconciler *service.Reconciler
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(reconciler *service.Reconciler) *PaymentHandler {
	return &PaymentHandler{Reconciler: reconciler}
}

// CreateIntent handles POST /create-payment-intent.  The amount is trusted
// and passed through verbatim in USD cents; processor failures surface as a
// 500 with the underlying message and are never retried here.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var body struct {
		Amount int64 `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if body.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "amount must be positive"})
	}
	secret, err := h.Reconciler.CreateIntent(c.Request().Context(), body.Amount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}
