package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers the liveness probe. It deliberately touches no
// dependency: a database or broker outage should surface in request
// handling and metrics, not flap the load balancer.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
