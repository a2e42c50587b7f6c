package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bestbartenders/bartender-booking/internal/auth"
	"github.com/bestbartenders/bartender-booking/internal/session"
)

// ActorKey is the echo context key under which the resolved actor is stored.
const ActorKey = "actor"

// SessionAuth returns an Echo middleware that resolves the session
// cookie against the server-side session store and injects the
// resulting actor into the request context. Requests without a valid
// session are rejected with 401 before reaching the handler. Handlers
// read the actor back via CurrentActor.
func SessionAuth(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not logged in"})
			}
			actor, err := store.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if err == session.ErrNoSession {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
			}
			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

// CurrentActor returns the actor stored by SessionAuth, or the
// anonymous actor when none is present.
func CurrentActor(c echo.Context) auth.Actor {
	if v, ok := c.Get(ActorKey).(auth.Actor); ok {
		return v
	}
	return auth.Anonymous
}
