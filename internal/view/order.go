package view

import (
	"time"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

// TicketView renders one ticket inside an order.
type TicketView struct {
	ID           uint64 `json:"id"`
	MovieSession uint64 `json:"movie_session"`
	Row          int    `json:"row"`
	Seat         int    `json:"seat"`
}

// OrderView renders an order with its tickets for both list and create
// responses. The owning user is implied by the request scope and not
// exposed.
type OrderView struct {
	ID        uint64       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Tickets   []TicketView `json:"tickets"`
}

func NewOrderView(o model.Order) OrderView {
	tickets := make([]TicketView, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, TicketView{
			ID:           t.ID,
			MovieSession: t.MovieSessionID,
			Row:          t.Row,
			Seat:         t.Seat,
		})
	}
	return OrderView{ID: o.ID, CreatedAt: o.CreatedAt.UTC(), Tickets: tickets}
}

func NewOrderList(os []model.Order) []OrderView {
	out := make([]OrderView, 0, len(os))
	for _, o := range os {
		out = append(out, NewOrderView(o))
	}
	return out
}
