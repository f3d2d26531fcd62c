// Package view defines the wire representations rendered by the handlers.
// Each resource has a small closed set of variants (list, detail, create
// echo, image) and handlers pick the constructor explicitly per
// operation; there is no reflection-driven serializer selection.
package view

import "github.com/NazarKravchenk0/cinema-booking-api/internal/model"

// GenreView renders a genre for both list and create responses.
type GenreView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func NewGenreView(g model.Genre) GenreView {
	return GenreView{ID: g.ID, Name: g.Name}
}

func NewGenreList(gs []model.Genre) []GenreView {
	out := make([]GenreView, 0, len(gs))
	for _, g := range gs {
		out = append(out, NewGenreView(g))
	}
	return out
}

// ActorView renders an actor. FullName is derived, never stored.
type ActorView struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func NewActorView(a model.Actor) ActorView {
	return ActorView{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FirstName + " " + a.LastName,
	}
}

func NewActorList(as []model.Actor) []ActorView {
	out := make([]ActorView, 0, len(as))
	for _, a := range as {
		out = append(out, NewActorView(a))
	}
	return out
}

// CinemaHallView renders a hall with its seat geometry.
type CinemaHallView struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
}

func NewCinemaHallView(h model.CinemaHall) CinemaHallView {
	return CinemaHallView{ID: h.ID, Name: h.Name, Rows: h.Rows, SeatsInRow: h.SeatsInRow}
}

func NewCinemaHallList(hs []model.CinemaHall) []CinemaHallView {
	out := make([]CinemaHallView, 0, len(hs))
	for _, h := range hs {
		out = append(out, NewCinemaHallView(h))
	}
	return out
}
