package router

import (
	"github.com/labstack/echo/v4"

	"github.com/bestbartenders/bartender-booking/internal/auth"
	"github.com/bestbartenders/bartender-booking/internal/handler"
	"github.com/bestbartenders/bartender-booking/internal/middleware"
	"github.com/bestbartenders/bartender-booking/internal/session"
)

// RegisterBooking wires the booking lifecycle endpoints. Every route
// requires a valid session; the role split mirrors the two sides of
// the marketplace. Ownership and state checks happen in the engine, so
// the role middleware only filters out the obviously wrong side.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, a *handler.AuthHandler, sessions *session.Store) {
	sessionAuth := middleware.SessionAuth(sessions)

	// Customer side: create, cancel, own list, profile.
	cust := e.Group("/v1", sessionAuth, middleware.RequireRole(auth.RoleCustomer))
	cust.POST("/bookings", b.Create)
	cust.POST("/bookings/:id/cancel", b.Cancel)
	cust.GET("/customer/bookings", b.ListForCustomer)
	cust.GET("/me", a.Me)

	// Bartender side: accept/reject links, own list, detail fetches.
	bart := e.Group("/v1", sessionAuth, middleware.RequireRole(auth.RoleBartender))
	bart.GET("/bookings/:id/accept", b.Accept)
	bart.GET("/bookings/:id/reject", b.Reject)
	bart.GET("/bartender/bookings", b.ListForBartender)
	bart.GET("/bookings/accepted/:id", b.GetAccepted)

	// Detail fetch is open to either owner; the engine decides.
	both := e.Group("/v1", sessionAuth)
	both.GET("/bookings/:id", b.Get)
}
