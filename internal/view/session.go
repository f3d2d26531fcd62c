package view

import (
	"time"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

// SessionListView flattens the movie title and image next to the raw
// foreign keys; the detail variant nests a reduced movie object instead.
type SessionListView struct {
	ID         uint64    `json:"id"`
	ShowTime   time.Time `json:"show_time"`
	CinemaHall uint64    `json:"cinema_hall"`
	Movie      uint64    `json:"movie"`
	MovieTitle string    `json:"movie_title"`
	MovieImage *string   `json:"movie_image"`
}

func NewSessionListView(s model.MovieSession) SessionListView {
	return SessionListView{
		ID:         s.ID,
		ShowTime:   s.ShowTime.UTC(),
		CinemaHall: s.CinemaHallID,
		Movie:      s.MovieID,
		MovieTitle: s.MovieTitle,
		MovieImage: s.MovieImage,
	}
}

func NewSessionList(ss []model.MovieSession) []SessionListView {
	out := make([]SessionListView, 0, len(ss))
	for _, s := range ss {
		out = append(out, NewSessionListView(s))
	}
	return out
}

// SessionDetailView nests the reduced movie representation.
type SessionDetailView struct {
	ID         uint64          `json:"id"`
	ShowTime   time.Time       `json:"show_time"`
	CinemaHall uint64          `json:"cinema_hall"`
	Movie      MovieNestedView `json:"movie"`
}

func NewSessionDetailView(s model.MovieSession) SessionDetailView {
	return SessionDetailView{
		ID:         s.ID,
		ShowTime:   s.ShowTime.UTC(),
		CinemaHall: s.CinemaHallID,
		Movie: MovieNestedView{
			ID:    s.MovieID,
			Title: s.MovieTitle,
			Image: s.MovieImage,
		},
	}
}
