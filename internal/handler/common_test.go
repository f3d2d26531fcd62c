package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func jsonContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindStrictAcceptsKnownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	errs := bindStrict(jsonContext(`{"name":"Drama"}`), &dst)
	assert.Nil(t, errs)
	assert.Equal(t, "Drama", dst.Name)
}

func TestBindStrictRejectsUnknownField(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	errs := bindStrict(jsonContext(`{"name":"Drama","surprise":true}`), &dst)
	assert.Equal(t, FieldErrors{"surprise": "unknown field"}, errs)
}

func TestBindStrictRejectsEmptyBody(t *testing.T) {
	var dst struct{}
	errs := bindStrict(jsonContext(""), &dst)
	assert.Equal(t, FieldErrors{"body": "request body is required"}, errs)
}

func TestBindStrictRejectsMalformedJSON(t *testing.T) {
	var dst struct{}
	errs := bindStrict(jsonContext(`{"name":`), &dst)
	assert.Equal(t, FieldErrors{"body": "invalid request body"}, errs)
}

func TestBindStrictRejectsTrailingDocument(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	errs := bindStrict(jsonContext(`{"name":"a"}{"name":"b"}`), &dst)
	assert.Equal(t, FieldErrors{"body": "invalid request body"}, errs)
}

func TestBindStrictReportsTypeMismatchField(t *testing.T) {
	var dst struct {
		Duration int `json:"duration"`
	}
	errs := bindStrict(jsonContext(`{"duration":"ninety"}`), &dst)
	assert.Equal(t, FieldErrors{"duration": "invalid value"}, errs)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("user@example.com"))
	assert.True(t, validEmail("a@b"))

	assert.False(t, validEmail(""))
	assert.False(t, validEmail("no-at-sign"))
	assert.False(t, validEmail("@example.com"))
	assert.False(t, validEmail("user@"))
	assert.False(t, validEmail("user name@example.com"))
}
