package model

import "time"

// Order groups the tickets bought by one user in a single checkout. An
// order is immutable once created; listings return newest orders first.
type Order struct {
	ID        uint64    // orders.id
	UserID    uint64    // orders.user_id
	CreatedAt time.Time // orders.created_at (server-set)

	Tickets []Ticket // created atomically with the order
}

// Ticket binds one seat of a session to an order. The database enforces
// that (movie_session_id, row_no, seat_no) is unique, so two tickets can
// never collide on the same seat of the same session.
type Ticket struct {
	ID             uint64 // tickets.id
	MovieSessionID uint64 // tickets.movie_session_id
	OrderID        uint64 // tickets.order_id
	Row            int    // tickets.row_no
	Seat           int    // tickets.seat_no
}
