package router // router wires endpoints to handlers and their middleware chains

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/doctors-portal/internal/handler"
	"github.com/iliyamo/doctors-portal/internal/middleware"
	"github.com/iliyamo/doctors-portal/internal/repository"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Users    *handler.UserHandler
	Bookings *handler.BookingHandler
	Payments *handler.PaymentHandler
	Doctors  *handler.DoctorHandler
}

// Deps carries the cross-cutting pieces the route table needs: the signing
// secret for the bearer gate, the user store for the fresh-read admin gate,
// and an optional response cache wrapped around the catalog listing.
type Deps struct {
	Secret       string
	Users        repository.UserStore
	CatalogCache echo.MiddlewareFunc
}

// Register mounts the full endpoint surface on e.  Privileged routes compose
// the two authorization stages explicitly: RequireAuth verifies the bearer
// token, RequireAdmin re-reads the caller's user record.  RequireAdmin never
// appears without RequireAuth in front of it.
func Register(e *echo.Echo, h Handlers, d Deps) {
	verified := middleware.RequireAuth(d.Secret)
	elevated := middleware.RequireAdmin(d.Users)

	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)

	// Public catalog and availability.  Only the catalog sits behind the
	// cache; availability must be recomputed per request.
	if d.CatalogCache != nil {
		e.GET("/services", h.Catalog.List, d.CatalogCache)
	} else {
		e.GET("/services", h.Catalog.List)
	}
	e.GET("/available", h.Catalog.Available)

	// Accounts.
	e.GET("/user", h.Users.List, verified)
	e.GET("/admin/:email", h.Users.AdminFlag)
	e.PUT("/user/admin/:email", h.Users.Elevate, verified, elevated)
	e.PUT("/user/:email", h.Users.Upsert)

	// Bookings and payment reconciliation.
	e.POST("/booking", h.Bookings.Create)
	e.GET("/booking", h.Bookings.List, verified)
	e.GET("/booking/:id", h.Bookings.Get, verified)
	e.PATCH("/booking/:id", h.Bookings.Reconcile, verified)
	e.POST("/create-payment-intent", h.Payments.CreateIntent, verified)

	// Roster management, admins only.
	doctor := e.Group("/doctor", verified, elevated)
	doctor.GET("", h.Doctors.List)
	doctor.POST("", h.Doctors.Create)
	doctor.DELETE("/:email", h.Doctors.Delete)
}
