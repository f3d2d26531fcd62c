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

// CatalogHandler serves genres, actors and cinema halls. All three are
// flat list/create resources behind the admin-or-read-only policy.
type CatalogHandler struct {
	Genres *repository.GenreRepo
	Actors *repository.ActorRepo
	Halls  *repository.HallRepo
}

func NewCatalogHandler(genres *repository.GenreRepo, actors *repository.ActorRepo, halls *repository.HallRepo) *CatalogHandler {
	return &CatalogHandler{Genres: genres, Actors: actors, Halls: halls}
}

func (h *CatalogHandler) ListGenres(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	genres, err := h.Genres.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list genres"})
	}
	return c.JSON(http.StatusOK, view.NewGenreList(genres))
}

type createGenreReq struct {
	ID   uint64 `json:"id"` // read-only, discarded
	Name string `json:"name"`
}

func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var req createGenreReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}
	if req.Name == "" {
		return validationFailed(c, FieldErrors{"name": "this field is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	genre := &model.Genre{Name: req.Name}
	if err := h.Genres.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrGenreExists) {
			return validationFailed(c, FieldErrors{"name": "genre with this name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create genre"})
	}
	return c.JSON(http.StatusCreated, view.NewGenreView(*genre))
}

func (h *CatalogHandler) ListActors(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actors, err := h.Actors.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list actors"})
	}
	return c.JSON(http.StatusOK, view.NewActorList(actors))
}

type createActorReq struct {
	ID        uint64 `json:"id"`        // read-only, discarded
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"` // derived, discarded
}

func (h *CatalogHandler) CreateActor(c echo.Context) error {
	var req createActorReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	errs := FieldErrors{}
	if req.FirstName == "" {
		errs["first_name"] = "this field is required"
	}
	if req.LastName == "" {
		errs["last_name"] = "this field is required"
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	actor := &model.Actor{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.Actors.Create(ctx, actor); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create actor"})
	}
	return c.JSON(http.StatusCreated, view.NewActorView(*actor))
}

func (h *CatalogHandler) ListHalls(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	halls, err := h.Halls.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list cinema halls"})
	}
	return c.JSON(http.StatusOK, view.NewCinemaHallList(halls))
}

type createHallReq struct {
	ID         uint64 `json:"id"` // read-only, discarded
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
}

func (h *CatalogHandler) CreateHall(c echo.Context) error {
	var req createHallReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	errs := FieldErrors{}
	if req.Name == "" {
		errs["name"] = "this field is required"
	}
	if req.Rows < 1 {
		errs["rows"] = "must be a positive integer"
	}
	if req.SeatsInRow < 1 {
		errs["seats_in_row"] = "must be a positive integer"
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall := &model.CinemaHall{Name: req.Name, Rows: req.Rows, SeatsInRow: req.SeatsInRow}
	if err := h.Halls.Create(ctx, hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create cinema hall"})
	}
	return c.JSON(http.StatusCreated, view.NewCinemaHallView(*hall))
}
