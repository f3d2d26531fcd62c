// Package middleware contains reusable HTTP middleware: bearer token
// authentication, the authorization policies, and the Redis-backed
// response cache and rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by TokenAuth and consumed by the policies and
// handlers.
const (
	CtxUserID  = "user_id"
	CtxIsStaff = "is_staff"
)

// TokenAuth returns an Echo middleware that validates a Bearer access
// token and injects the caller's id and staff flag into the request
// context. Every protected endpoint sits behind this middleware, so an
// unauthenticated caller is rejected before any resource logic runs.
func TokenAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			staff, _ := claims["is_staff"].(bool)

			c.Set(CtxUserID, uint64(sub))
			c.Set(CtxIsStaff, staff)
			return next(c)
		}
	}
}
