// Package repository implements raw-SQL data access for all entities.
// This file defines error values reused across repositories. Sentinel
// values let handlers distinguish failure scenarios: validation problems
// (unknown foreign keys, duplicate unique values), missing rows, and the
// seat conflict raised when two orders race for the same seat.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a row addressed by id does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists signals a violation of the users.email unique key.
var ErrEmailExists = errors.New("email already exists")

// ErrGenreExists signals a violation of the genres.name unique key.
var ErrGenreExists = errors.New("genre name already exists")

// ErrUnknownGenre and ErrUnknownActor are returned by movie creation when
// a referenced relation id has no matching row.
var (
	ErrUnknownGenre = errors.New("unknown genre id")
	ErrUnknownActor = errors.New("unknown actor id")
)

// ErrUnknownHall and ErrUnknownMovie are returned by session writes when
// the referenced hall or movie does not exist.
var (
	ErrUnknownHall  = errors.New("unknown cinema hall id")
	ErrUnknownMovie = errors.New("unknown movie id")
)

// ErrSessionNotFound is returned by order creation when a ticket names a
// session that does not exist.
var ErrSessionNotFound = errors.New("movie session not found")

// ErrSeatTaken is returned when the tickets unique key rejects an insert,
// i.e. another order already holds one of the requested seats. Handlers
// translate this into an HTTP 409 response and the whole order is rolled
// back.
var ErrSeatTaken = errors.New("seat already taken for this session")

// SeatError reports a single offending (session, row, seat) triple from
// order creation, either out of the hall's geometry or already sold.
type SeatError struct {
	SessionID uint64
	Row       int
	Seat      int
	Taken     bool // true when sold, false when out of range
}

func (e *SeatError) Error() string {
	if e.Taken {
		return fmt.Sprintf("seat (row %d, seat %d) is already taken for session %d", e.Row, e.Seat, e.SessionID)
	}
	return fmt.Sprintf("seat (row %d, seat %d) is outside the hall for session %d", e.Row, e.Seat, e.SessionID)
}

// Unwrap lets errors.Is(err, ErrSeatTaken) match sold-seat conflicts
// without inspecting the struct.
func (e *SeatError) Unwrap() error {
	if e.Taken {
		return ErrSeatTaken
	}
	return nil
}

// isDuplicate reports whether err is a MySQL duplicate-key error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
