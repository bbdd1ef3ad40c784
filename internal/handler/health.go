package handler // handler implements the portal's HTTP endpoints

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root answers the banner endpoint used as a liveness smoke test.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "doctor portal is running")
}

// Health is the health check probed by load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
