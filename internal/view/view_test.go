package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/view"
)

func TestNewMovieViewFlattensRelations(t *testing.T) {
	img := "uploads/movies/inception-abc.png"
	m := model.Movie{
		ID:          3,
		Title:       "Inception",
		Description: "Dreams within dreams",
		Duration:    148,
		Image:       &img,
		Genres:      []model.Genre{{ID: 1, Name: "Sci-Fi"}, {ID: 2, Name: "Thriller"}},
		Actors:      []model.Actor{{ID: 5, FirstName: "Leonardo", LastName: "DiCaprio"}},
	}

	v := view.NewMovieView(m)
	assert.Equal(t, []string{"Sci-Fi", "Thriller"}, v.Genres)
	assert.Equal(t, []string{"Leonardo DiCaprio"}, v.Actors)
	assert.Equal(t, &img, v.Image)
}

func TestNewMovieViewEmptyRelations(t *testing.T) {
	v := view.NewMovieView(model.Movie{ID: 1, Title: "Solo"})
	// Empty slices, not null, so clients always see arrays.
	assert.NotNil(t, v.Genres)
	assert.Len(t, v.Genres, 0)
	assert.NotNil(t, v.Actors)
	assert.Nil(t, v.Image)
}

func TestNewActorViewDerivesFullName(t *testing.T) {
	v := view.NewActorView(model.Actor{ID: 9, FirstName: "Tom", LastName: "Hardy"})
	assert.Equal(t, "Tom Hardy", v.FullName)
}

func TestSessionViews(t *testing.T) {
	show := time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC)
	img := "uploads/movies/dune-xyz.jpg"
	s := model.MovieSession{
		ID:           4,
		ShowTime:     show,
		CinemaHallID: 2,
		MovieID:      7,
		MovieTitle:   "Dune",
		MovieImage:   &img,
	}

	list := view.NewSessionListView(s)
	assert.Equal(t, uint64(2), list.CinemaHall)
	assert.Equal(t, uint64(7), list.Movie)
	assert.Equal(t, "Dune", list.MovieTitle)

	detail := view.NewSessionDetailView(s)
	assert.Equal(t, uint64(7), detail.Movie.ID)
	assert.Equal(t, "Dune", detail.Movie.Title)
	assert.Equal(t, &img, detail.Movie.Image)
	assert.Equal(t, show, detail.ShowTime)
}

func TestNewOrderView(t *testing.T) {
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	o := model.Order{
		ID:        11,
		UserID:    3,
		CreatedAt: created,
		Tickets: []model.Ticket{
			{ID: 21, MovieSessionID: 4, Row: 1, Seat: 2},
			{ID: 22, MovieSessionID: 4, Row: 1, Seat: 3},
		},
	}

	v := view.NewOrderView(o)
	assert.Equal(t, uint64(11), v.ID)
	assert.Equal(t, created, v.CreatedAt)
	assert.Len(t, v.Tickets, 2)
	assert.Equal(t, uint64(4), v.Tickets[0].MovieSession)
	assert.Equal(t, 3, v.Tickets[1].Seat)
}
