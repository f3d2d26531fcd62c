package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/repository"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/utils"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/view"
)

// maxImageSize caps uploaded movie posters at 10 MiB.
const maxImageSize = 10 << 20

// MovieHandler serves the movie catalog and poster uploads.
type MovieHandler struct {
	Movies    *repository.MovieRepo
	MediaRoot string
}

func NewMovieHandler(movies *repository.MovieRepo, mediaRoot string) *MovieHandler {
	return &MovieHandler{Movies: movies, MediaRoot: mediaRoot}
}

func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list movies"})
	}
	return c.JSON(http.StatusOK, view.NewMovieList(movies))
}

type createMovieReq struct {
	ID          uint64   `json:"id"`    // read-only, discarded
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Genres      []uint64 `json:"genres"`
	Actors      []uint64 `json:"actors"`
	Image       *string  `json:"image"` // read-only, discarded; set via upload-image
}

func (h *MovieHandler) Create(c echo.Context) error {
	var req createMovieReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	errs := FieldErrors{}
	if req.Title == "" {
		errs["title"] = "this field is required"
	}
	if req.Description == "" {
		errs["description"] = "this field is required"
	}
	if req.Duration < 1 {
		errs["duration"] = "must be a positive integer"
	}
	for _, id := range req.Genres {
		if id == 0 {
			errs["genres"] = "ids must be positive integers"
			break
		}
	}
	for _, id := range req.Actors {
		if id == 0 {
			errs["actors"] = "ids must be positive integers"
			break
		}
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie := &model.Movie{Title: req.Title, Description: req.Description, Duration: req.Duration}
	if err := h.Movies.Create(ctx, movie, req.Genres, req.Actors); err != nil {
		switch {
		case errors.Is(err, repository.ErrUnknownGenre):
			return validationFailed(c, FieldErrors{"genres": "one or more genre ids do not exist"})
		case errors.Is(err, repository.ErrUnknownActor):
			return validationFailed(c, FieldErrors{"actors": "one or more actor ids do not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}

	// Re-read so the response carries genre and actor names, not ids.
	created, err := h.Movies.GetByID(ctx, movie.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}
	return c.JSON(http.StatusCreated, view.NewMovieView(*created))
}

func (h *MovieHandler) Retrieve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load movie"})
	}
	return c.JSON(http.StatusOK, view.NewMovieView(*movie))
}

// UploadImage accepts a multipart form with an "image" part, stores the
// file under the media root at uploads/movies/<slug>-<uuid>.<ext> and
// records the relative path on the movie. A re-upload replaces the
// recorded path; the previous file is left on disk.
func (h *MovieHandler) UploadImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return validationFailed(c, FieldErrors{"image": "an image file is required"})
	}
	if !utils.ValidImageExt(file.Filename) {
		return validationFailed(c, FieldErrors{"image": "unsupported image type"})
	}
	if file.Size > maxImageSize {
		return validationFailed(c, FieldErrors{"image": "file too large"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load movie"})
	}

	relPath := utils.MovieImagePath(movie.Title, file.Filename)
	if err := h.saveUpload(file, relPath); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
	}

	if err := h.Movies.UpdateImage(ctx, id, relPath); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
	}
	return c.JSON(http.StatusOK, view.NewMovieImageView(id, relPath))
}

func (h *MovieHandler) saveUpload(file *multipart.FileHeader, relPath string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dstPath := filepath.Join(h.MediaRoot, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
