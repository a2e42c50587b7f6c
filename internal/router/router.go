package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bestbartenders/bartender-booking/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check used by load balancers
// and the Prometheus metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers registration, login, verification and logout
// for both account types. None of these require an existing session;
// logout reads the cookie itself and succeeds even without one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/customer/register", a.RegisterCustomer)
	g.POST("/customer/login", a.LoginCustomer)
	g.GET("/customer/verify", a.VerifyCustomer)
	g.POST("/bartender/register", a.RegisterBartender)
	g.POST("/bartender/login", a.LoginBartender)
	g.POST("/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints. Guests can
// inspect the bartender directory before registering. The optional
// cache middleware is applied by the caller.
func RegisterPublic(e *echo.Echo, d *handler.DirectoryHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/v1/bartenders", d.ListBartenders, mw...)
}
