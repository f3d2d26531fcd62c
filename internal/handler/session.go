package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/repository"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/view"
)

// sessionStore is the slice of the session repository the handler needs.
type sessionStore interface {
	List(ctx context.Context) ([]model.MovieSession, error)
	GetByID(ctx context.Context, id uint64) (*model.MovieSession, error)
	Create(ctx context.Context, s *model.MovieSession) error
	Update(ctx context.Context, s *model.MovieSession) error
	Delete(ctx context.Context, id uint64) error
}

// SessionHandler serves movie session CRUD. Sessions are the only
// catalog resource with update and delete; deleting a session cascades
// to its tickets at the database level.
type SessionHandler struct {
	Sessions sessionStore
}

func NewSessionHandler(sessions sessionStore) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

func (h *SessionHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sessions, err := h.Sessions.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list movie sessions"})
	}
	return c.JSON(http.StatusOK, view.NewSessionList(sessions))
}

type sessionWriteReq struct {
	ID         uint64  `json:"id"` // read-only, discarded
	ShowTime   *string `json:"show_time"`
	CinemaHall *uint64 `json:"cinema_hall"`
	Movie      *uint64 `json:"movie"`
}

// apply copies the supplied fields onto s, collecting field errors for
// values that are present but invalid.
func (r *sessionWriteReq) apply(s *model.MovieSession, errs FieldErrors) {
	if r.ShowTime != nil {
		t, err := time.Parse(time.RFC3339, *r.ShowTime)
		if err != nil {
			errs["show_time"] = "must be an RFC 3339 timestamp"
		} else {
			s.ShowTime = t.UTC()
		}
	}
	if r.CinemaHall != nil {
		if *r.CinemaHall == 0 {
			errs["cinema_hall"] = "must be a positive integer"
		} else {
			s.CinemaHallID = *r.CinemaHall
		}
	}
	if r.Movie != nil {
		if *r.Movie == 0 {
			errs["movie"] = "must be a positive integer"
		} else {
			s.MovieID = *r.Movie
		}
	}
}

// requireAll marks any absent field as missing; used on create and full
// update, where the whole resource must be supplied.
func (r *sessionWriteReq) requireAll(errs FieldErrors) {
	if r.ShowTime == nil {
		errs["show_time"] = "this field is required"
	}
	if r.CinemaHall == nil {
		errs["cinema_hall"] = "this field is required"
	}
	if r.Movie == nil {
		errs["movie"] = "this field is required"
	}
}

func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionWriteReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	errs := FieldErrors{}
	req.requireAll(errs)
	var session model.MovieSession
	req.apply(&session, errs)
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.Create(ctx, &session); err != nil {
		if fe := refFieldError(err); fe != nil {
			return validationFailed(c, fe)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie session"})
	}

	// Writes respond with the flat list shape; only retrieve nests the
	// movie object.
	created, err := h.Sessions.GetByID(ctx, session.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie session"})
	}
	return c.JSON(http.StatusCreated, view.NewSessionListView(*created))
}

func (h *SessionHandler) Retrieve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie session not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	session, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load movie session"})
	}
	return c.JSON(http.StatusOK, view.NewSessionDetailView(*session))
}

// Update handles both PUT and PATCH. PUT requires every writable field;
// PATCH overlays only the fields present in the body.
func (h *SessionHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie session not found"})
	}

	var req sessionWriteReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	errs := FieldErrors{}
	if c.Request().Method == http.MethodPut {
		req.requireAll(errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	session, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load movie session"})
	}

	req.apply(session, errs)
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	if err := h.Sessions.Update(ctx, session); err != nil {
		if fe := refFieldError(err); fe != nil {
			return validationFailed(c, fe)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update movie session"})
	}

	updated, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update movie session"})
	}
	return c.JSON(http.StatusOK, view.NewSessionListView(*updated))
}

func (h *SessionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie session not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete movie session"})
	}
	return c.NoContent(http.StatusNoContent)
}

// refFieldError maps broken foreign key sentinels onto the field that
// carried the bad id.
func refFieldError(err error) FieldErrors {
	switch {
	case errors.Is(err, repository.ErrUnknownHall):
		return FieldErrors{"cinema_hall": "cinema hall does not exist"}
	case errors.Is(err, repository.ErrUnknownMovie):
		return FieldErrors{"movie": "movie does not exist"}
	}
	return nil
}
