package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/config"
)

func rateCtx(userID uint64) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/orders")
	if userID > 0 {
		c.Set(CtxUserID, userID)
	}
	return c
}

func TestBuildRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_route"}
	assert.Equal(t, "rl:user:7:route:GET /v1/orders", buildRateKey(cfg, rateCtx(7)))
	assert.Equal(t, "rl:user:anon:route:GET /v1/orders", buildRateKey(cfg, rateCtx(0)))

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:203.0.113.9", buildRateKey(cfg, rateCtx(7)))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(5), asInt64(int64(5)))
	assert.Equal(t, int64(5), asInt64(5))
	assert.Equal(t, int64(5), asInt64(5.9))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64("not a number"))
}

func TestNewTokenBucketNoopWithoutClient(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(rateCtx(1)))
	assert.True(t, called)
}
