// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedEvent is published when an order and its tickets have been
// committed. It carries enough information for downstream consumers to log
// or notify without querying the primary database.
type OrderConfirmedEvent struct {
	OrderID     uint64      `json:"order_id"`
	UserID      uint64      `json:"user_id"`
	Tickets     []EventSeat `json:"tickets"`
	ConfirmedAt string      `json:"confirmed_at"`
}

// EventSeat identifies one booked seat within the event payload.
type EventSeat struct {
	MovieSessionID uint64 `json:"movie_session"`
	Row            int    `json:"row"`
	Seat           int    `json:"seat"`
}
