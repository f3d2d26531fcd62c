package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/queue"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/repository"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/service"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/view"
)

// OrderHandler serves order listing and creation. Orders always belong to
// the authenticated caller; staff users additionally see everyone's orders
// in the listing.
type OrderHandler struct {
	Orders *repository.OrderRepo
}

func NewOrderHandler(orders *repository.OrderRepo) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

func (h *OrderHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListForUser(ctx, userID, isStaff(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list orders"})
	}
	return c.JSON(http.StatusOK, view.NewOrderList(orders))
}

type ticketReq struct {
	MovieSession uint64 `json:"movie_session"`
	Row          int    `json:"row"`
	Seat         int    `json:"seat"`
}

type createOrderReq struct {
	ID        uint64      `json:"id"`         // read-only, discarded
	CreatedAt string      `json:"created_at"` // read-only, discarded
	Tickets   []ticketReq `json:"tickets"`
}

// Create books every requested seat in one transaction. The owner is
// always the caller; any user id in the payload is rejected as an unknown
// field. A single unavailable seat rejects the whole order.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req createOrderReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	tickets, errs := validateTickets(req.Tickets)
	if errs != nil {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	order, err := h.Orders.CreateWithTickets(ctx, userID, tickets)
	if err != nil {
		var seatErr *repository.SeatError
		switch {
		case errors.As(err, &seatErr):
			if seatErr.Taken {
				return c.JSON(http.StatusConflict, echo.Map{"error": seatErr.Error()})
			}
			return validationFailed(c, FieldErrors{"tickets": seatErr.Error()})
		case errors.Is(err, repository.ErrSessionNotFound):
			return validationFailed(c, FieldErrors{"tickets": "one or more movie sessions do not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create order"})
	}

	// Best effort: a broker outage must not fail a committed order.
	go publishOrderConfirmed(order)

	return c.JSON(http.StatusCreated, view.NewOrderView(*order))
}

// validateTickets checks the payload before any database work: at least
// one ticket, positive identifiers and coordinates, and no seat requested
// twice within the same order.
func validateTickets(reqs []ticketReq) ([]model.Ticket, FieldErrors) {
	if len(reqs) == 0 {
		return nil, FieldErrors{"tickets": "at least one ticket is required"}
	}

	seen := make(map[ticketReq]struct{}, len(reqs))
	tickets := make([]model.Ticket, 0, len(reqs))
	for i, t := range reqs {
		field := fmt.Sprintf("tickets[%d]", i)
		if t.MovieSession == 0 {
			return nil, FieldErrors{field: "movie_session must be a positive integer"}
		}
		if t.Row < 1 {
			return nil, FieldErrors{field: "row must be a positive integer"}
		}
		if t.Seat < 1 {
			return nil, FieldErrors{field: "seat must be a positive integer"}
		}
		if _, dup := seen[t]; dup {
			return nil, FieldErrors{field: "seat requested more than once"}
		}
		seen[t] = struct{}{}
		tickets = append(tickets, model.Ticket{MovieSessionID: t.MovieSession, Row: t.Row, Seat: t.Seat})
	}
	return tickets, nil
}

func publishOrderConfirmed(order *model.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seats := make([]queue.EventSeat, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		seats = append(seats, queue.EventSeat{MovieSessionID: t.MovieSessionID, Row: t.Row, Seat: t.Seat})
	}
	_ = service.PublishOrderConfirmed(ctx, queue.OrderConfirmedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Tickets:     seats,
		ConfirmedAt: order.CreatedAt.UTC().Format(time.RFC3339),
	})
}
