package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Two named authorization policies cover every resource. Both assume
// TokenAuth already ran, so an anonymous caller never reaches them.

// safeMethods are the read-only HTTP verbs.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// AdminOrReadOnly grants safe requests to any authenticated caller and
// write requests only to staff. Catalog resources (genres, actors,
// cinema halls, movies, movie sessions) use this policy.
func AdminOrReadOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if safeMethods[c.Request().Method] {
				return next(c)
			}
			staff, _ := c.Get(CtxIsStaff).(bool)
			if !staff {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// AuthenticatedOnly grants any request to any authenticated caller.
// Orders and the profile endpoint use this policy; row scoping (own
// orders only) happens in the handlers.
func AuthenticatedOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(CtxUserID).(uint64); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}
