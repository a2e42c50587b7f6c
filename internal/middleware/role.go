package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bestbartenders/bartender-booking/internal/auth"
)

// RequireRole returns a middleware that enforces that the resolved
// actor holds one of the specified roles. It assumes SessionAuth ran
// earlier in the chain; an anonymous actor or a role outside the
// allowed set is rejected with 403 Forbidden.
func RequireRole(roles ...auth.Role) echo.MiddlewareFunc {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := CurrentActor(c)
			if actor.IsAnonymous() || !allowed[actor.Role()] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
