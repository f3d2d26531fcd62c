// Package handler implements the HTTP endpoints. Handlers bind and
// validate request bodies, call the repositories and render results
// through the view package. Authentication and the authorization
// policies run in middleware before any handler.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/middleware"
)

// FieldErrors maps offending field names to messages; it renders as the
// body of every 400 validation response: {"errors": {field: msg}}.
type FieldErrors map[string]string

// validationFailed renders a field-scoped 400 response.
func validationFailed(c echo.Context, errs FieldErrors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
}

// bindStrict decodes the JSON body into dst, rejecting unknown fields.
// Read-only fields a client may legitimately echo back (id, created_at,
// derived names) must therefore appear in the request DTO, where the
// handler discards them. Returns nil on success.
func bindStrict(c echo.Context, dst interface{}) FieldErrors {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return FieldErrors{"body": "request body is required"}
		}
		if field, ok := unknownField(err); ok {
			return FieldErrors{field: "unknown field"}
		}
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return FieldErrors{ute.Field: "invalid value"}
		}
		return FieldErrors{"body": "invalid request body"}
	}
	// A second document after the first one is as malformed as trailing
	// garbage.
	if dec.More() {
		return FieldErrors{"body": "invalid request body"}
	}
	return nil
}

// unknownField extracts the field name from encoding/json's
// `json: unknown field "name"` error.
func unknownField(err error) (string, bool) {
	const prefix = `json: unknown field `
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}

// getUserID extracts the authenticated caller's id from the context.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.CtxUserID).(uint64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("no user in context")
}

// isStaff reports whether the authenticated caller has the staff flag.
func isStaff(c echo.Context) bool {
	staff, _ := c.Get(middleware.CtxIsStaff).(bool)
	return staff
}

// validEmail applies the same minimal shape check on every path that
// accepts an email address.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
