package model

import "time"

// MovieSession is a scheduled screening of one movie in one cinema hall
// at one show time. Deleting a session, its movie or its hall cascades
// to the session's tickets.
type MovieSession struct {
	ID           uint64    // movie_sessions.id
	ShowTime     time.Time // movie_sessions.show_time
	CinemaHallID uint64    // movie_sessions.cinema_hall_id
	MovieID      uint64    // movie_sessions.movie_id

	// Populated by list/detail queries for rendering.
	MovieTitle string  // movies.title
	MovieImage *string // movies.image
}
