package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEventLine(t *testing.T) {
	line := formatEventLine(OrderConfirmedEvent{
		OrderID:     12,
		UserID:      4,
		ConfirmedAt: "2026-08-30T12:00:00Z",
		Tickets: []EventSeat{
			{MovieSessionID: 9, Row: 1, Seat: 2},
			{MovieSessionID: 9, Row: 1, Seat: 3},
		},
	})

	assert.Equal(t, "[2026-08-30T12:00:00Z] Order confirmed | order_id=12 | user_id=4 | seats=[9:1:2,9:1:3]\n", line)
}

func TestFormatEventLineNoTickets(t *testing.T) {
	line := formatEventLine(OrderConfirmedEvent{OrderID: 1, UserID: 1, ConfirmedAt: "x"})
	assert.Contains(t, line, "seats=[]")
}
