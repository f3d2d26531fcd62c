package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/middleware"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/utils"
)

const testSecret = "unit-test-secret"

// captureContext records what TokenAuth put into the request context.
func captureContext(gotID *uint64, gotStaff *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id, ok := c.Get(middleware.CtxUserID).(uint64); ok {
			*gotID = id
		}
		if staff, ok := c.Get(middleware.CtxIsStaff).(bool); ok {
			*gotStaff = staff
		}
		return c.NoContent(http.StatusOK)
	}
}

func runWithAuth(t *testing.T, header string, gotID *uint64, gotStaff *bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.TokenAuth(testSecret)(captureContext(gotID, gotStaff))
	require.NoError(t, h(c))
	return rec
}

func TestTokenAuthValidToken(t *testing.T) {
	token, err := utils.NewAccessToken(testSecret, 7, true, 15)
	require.NoError(t, err)

	var gotID uint64
	var gotStaff bool
	rec := runWithAuth(t, "Bearer "+token.Token, &gotID, &gotStaff)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), gotID)
	assert.True(t, gotStaff)
}

func TestTokenAuthMissingHeader(t *testing.T) {
	var gotID uint64
	var gotStaff bool
	rec := runWithAuth(t, "", &gotID, &gotStaff)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, gotID)
}

func TestTokenAuthWrongSecret(t *testing.T) {
	token, err := utils.NewAccessToken("another-secret", 7, false, 15)
	require.NoError(t, err)

	var gotID uint64
	var gotStaff bool
	rec := runWithAuth(t, "Bearer "+token.Token, &gotID, &gotStaff)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, gotID)
}

func TestTokenAuthGarbageToken(t *testing.T) {
	var gotID uint64
	var gotStaff bool
	rec := runWithAuth(t, "Bearer not.a.jwt", &gotID, &gotStaff)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
