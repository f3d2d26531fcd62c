package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/middleware"
)

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func runPolicy(t *testing.T, mw echo.MiddlewareFunc, method string, userID uint64, staff bool) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID > 0 {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxIsStaff, staff)
	}
	require.NoError(t, mw(okHandler)(c))
	return rec.Code
}

func TestAdminOrReadOnly(t *testing.T) {
	mw := middleware.AdminOrReadOnly()

	// Safe methods pass for everyone who got through TokenAuth.
	assert.Equal(t, http.StatusOK, runPolicy(t, mw, http.MethodGet, 1, false))
	assert.Equal(t, http.StatusOK, runPolicy(t, mw, http.MethodHead, 1, false))
	assert.Equal(t, http.StatusOK, runPolicy(t, mw, http.MethodOptions, 1, false))

	// Writes require the staff flag.
	assert.Equal(t, http.StatusForbidden, runPolicy(t, mw, http.MethodPost, 1, false))
	assert.Equal(t, http.StatusForbidden, runPolicy(t, mw, http.MethodPut, 1, false))
	assert.Equal(t, http.StatusForbidden, runPolicy(t, mw, http.MethodDelete, 1, false))

	assert.Equal(t, http.StatusOK, runPolicy(t, mw, http.MethodPost, 2, true))
	assert.Equal(t, http.StatusOK, runPolicy(t, mw, http.MethodDelete, 2, true))
}

func TestAuthenticatedOnly(t *testing.T) {
	mw := middleware.AuthenticatedOnly()

	assert.Equal(t, http.StatusOK, runPolicy(t, mw, http.MethodGet, 1, false))
	assert.Equal(t, http.StatusOK, runPolicy(t, mw, http.MethodPost, 1, false))

	// No user id in context means TokenAuth never ran or failed.
	assert.Equal(t, http.StatusUnauthorized, runPolicy(t, mw, http.MethodGet, 0, false))
}
