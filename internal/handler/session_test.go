package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

func strp(s string) *string { return &s }
func u64p(v uint64) *uint64 { return &v }

func TestSessionWriteReqApply(t *testing.T) {
	req := sessionWriteReq{
		ShowTime:   strp("2026-09-01T19:30:00Z"),
		CinemaHall: u64p(2),
		Movie:      u64p(7),
	}

	var s model.MovieSession
	errs := FieldErrors{}
	req.apply(&s, errs)

	require.Empty(t, errs)
	assert.Equal(t, time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC), s.ShowTime)
	assert.Equal(t, uint64(2), s.CinemaHallID)
	assert.Equal(t, uint64(7), s.MovieID)
}

func TestSessionWriteReqApplyPartial(t *testing.T) {
	// Only the supplied field changes; the rest of the session is kept.
	s := model.MovieSession{
		ShowTime:     time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC),
		CinemaHallID: 2,
		MovieID:      7,
	}

	req := sessionWriteReq{Movie: u64p(9)}
	errs := FieldErrors{}
	req.apply(&s, errs)

	require.Empty(t, errs)
	assert.Equal(t, uint64(9), s.MovieID)
	assert.Equal(t, uint64(2), s.CinemaHallID)
	assert.False(t, s.ShowTime.IsZero())
}

func TestSessionWriteReqApplyBadValues(t *testing.T) {
	req := sessionWriteReq{
		ShowTime:   strp("yesterday"),
		CinemaHall: u64p(0),
		Movie:      u64p(0),
	}

	var s model.MovieSession
	errs := FieldErrors{}
	req.apply(&s, errs)

	assert.Contains(t, errs, "show_time")
	assert.Contains(t, errs, "cinema_hall")
	assert.Contains(t, errs, "movie")
}

func TestSessionWriteReqRequireAll(t *testing.T) {
	errs := FieldErrors{}
	(&sessionWriteReq{}).requireAll(errs)

	assert.Len(t, errs, 3)
	assert.Equal(t, "this field is required", errs["show_time"])

	errs = FieldErrors{}
	(&sessionWriteReq{ShowTime: strp("2026-09-01T19:30:00Z"), CinemaHall: u64p(1), Movie: u64p(1)}).requireAll(errs)
	assert.Empty(t, errs)
}

type sessionStoreMock struct{ mock.Mock }

func (m *sessionStoreMock) List(ctx context.Context) ([]model.MovieSession, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.MovieSession), args.Error(1)
}

func (m *sessionStoreMock) GetByID(ctx context.Context, id uint64) (*model.MovieSession, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*model.MovieSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *sessionStoreMock) Create(ctx context.Context, s *model.MovieSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *sessionStoreMock) Update(ctx context.Context, s *model.MovieSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *sessionStoreMock) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func sessionRequest(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/v1/movie-sessions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateSessionRespondsWithListShape(t *testing.T) {
	stored := &model.MovieSession{
		ID:           4,
		ShowTime:     time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC),
		CinemaHallID: 2,
		MovieID:      7,
		MovieTitle:   "Dune",
	}
	store := new(sessionStoreMock)
	store.On("Create", mock.Anything, mock.AnythingOfType("*model.MovieSession")).
		Run(func(args mock.Arguments) { args.Get(1).(*model.MovieSession).ID = 4 }).
		Return(nil)
	store.On("GetByID", mock.Anything, uint64(4)).Return(stored, nil)

	c, rec := sessionRequest(http.MethodPost, `{"show_time":"2026-09-01T19:30:00Z","cinema_hall":2,"movie":7}`)
	h := NewSessionHandler(store)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// The movie comes back as a bare id with the title alongside, not as
	// a nested object.
	assert.Equal(t, float64(7), body["movie"])
	assert.Equal(t, "Dune", body["movie_title"])
	store.AssertExpectations(t)
}

func TestUpdateSessionRespondsWithListShape(t *testing.T) {
	stored := &model.MovieSession{
		ID:           4,
		ShowTime:     time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC),
		CinemaHallID: 2,
		MovieID:      7,
		MovieTitle:   "Dune",
	}
	store := new(sessionStoreMock)
	store.On("GetByID", mock.Anything, uint64(4)).Return(stored, nil)
	store.On("Update", mock.Anything, mock.AnythingOfType("*model.MovieSession")).Return(nil)

	c, rec := sessionRequest(http.MethodPut, `{"show_time":"2026-09-02T21:00:00Z","cinema_hall":2,"movie":7}`)
	c.SetParamNames("id")
	c.SetParamValues("4")
	h := NewSessionHandler(store)
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["movie"])
	assert.Equal(t, "Dune", body["movie_title"])
	store.AssertExpectations(t)
}

func TestRetrieveSessionNestsMovie(t *testing.T) {
	stored := &model.MovieSession{
		ID:           4,
		ShowTime:     time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC),
		CinemaHallID: 2,
		MovieID:      7,
		MovieTitle:   "Dune",
	}
	store := new(sessionStoreMock)
	store.On("GetByID", mock.Anything, uint64(4)).Return(stored, nil)

	c, rec := sessionRequest(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("4")
	h := NewSessionHandler(store)
	require.NoError(t, h.Retrieve(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	nested, ok := body["movie"].(map[string]interface{})
	require.True(t, ok, "retrieve must nest the movie object")
	assert.Equal(t, "Dune", nested["title"])
}
