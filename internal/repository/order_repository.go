package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

// OrderRepo creates and lists orders together with their tickets. Order
// creation is the one operation that needs explicit serialization: the
// availability check and the ticket inserts run in a single transaction,
// with the (movie_session_id, row_no, seat_no) unique key as the backstop
// against two concurrent bookings of the same seat.
type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// hallGeometry caches one session's hall bounds during order creation.
type hallGeometry struct {
	rows       int
	seatsInRow int
}

// CreateWithTickets inserts an order owned by userID and all requested
// tickets atomically. Every ticket's session must exist and its (row,
// seat) must fit the session hall's geometry; an already sold seat fails
// the whole order with *SeatError (Taken) and nothing is persisted.
func (r *OrderRepo) CreateWithTickets(ctx context.Context, userID uint64, tickets []model.Ticket) (*model.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock each referenced session row and fetch its hall geometry. The
	// locking read serializes concurrent orders for the same session.
	// Sessions are locked in ascending id order so two orders naming the
	// same sessions never lock them in opposite order and deadlock.
	geo := make(map[uint64]hallGeometry)
	for _, sid := range distinctSessionIDs(tickets) {
		var g hallGeometry
		err := tx.QueryRowContext(ctx,
			`SELECT ch.rows_count, ch.seats_in_row
			 FROM movie_sessions ms
			 JOIN cinema_halls ch ON ch.id = ms.cinema_hall_id
			 WHERE ms.id = ? FOR UPDATE`,
			sid).Scan(&g.rows, &g.seatsInRow)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("movie session %d: %w", sid, ErrSessionNotFound)
		}
		if err != nil {
			return nil, err
		}
		geo[sid] = g
	}
	for _, t := range tickets {
		g := geo[t.MovieSessionID]
		if t.Row < 1 || t.Row > g.rows || t.Seat < 1 || t.Seat > g.seatsInRow {
			return nil, &SeatError{SessionID: t.MovieSessionID, Row: t.Row, Seat: t.Seat}
		}
	}

	// Report seats that are already sold before attempting the inserts so
	// the client gets a precise message; the unique key still catches any
	// insert that races past this check.
	if taken, err := r.firstTakenTx(ctx, tx, tickets); err != nil {
		return nil, err
	} else if taken != nil {
		return nil, taken
	}

	res, err := tx.ExecContext(ctx, "INSERT INTO orders (user_id) VALUES (?)", userID)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order := &model.Order{ID: uint64(orderID), UserID: userID, Tickets: make([]model.Ticket, 0, len(tickets))}
	for _, t := range tickets {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO tickets (movie_session_id, order_id, row_no, seat_no) VALUES (?,?,?,?)",
			t.MovieSessionID, order.ID, t.Row, t.Seat)
		if err != nil {
			if isDuplicate(err) {
				return nil, &SeatError{SessionID: t.MovieSessionID, Row: t.Row, Seat: t.Seat, Taken: true}
			}
			return nil, err
		}
		tid, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		t.ID = uint64(tid)
		t.OrderID = order.ID
		order.Tickets = append(order.Tickets, t)
	}

	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM orders WHERE id=?", order.ID).Scan(&order.CreatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return order, nil
}

// distinctSessionIDs returns the unique session ids referenced by the
// tickets, sorted ascending to give every transaction the same lock
// acquisition order.
func distinctSessionIDs(tickets []model.Ticket) []uint64 {
	seen := make(map[uint64]struct{}, len(tickets))
	ids := make([]uint64, 0, len(tickets))
	for _, t := range tickets {
		if _, ok := seen[t.MovieSessionID]; ok {
			continue
		}
		seen[t.MovieSessionID] = struct{}{}
		ids = append(ids, t.MovieSessionID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// firstTakenTx returns a *SeatError for the first requested seat that is
// already sold, or nil when all are free. The lookup runs with FOR UPDATE
// so a competing transaction cannot sell the seat between check and insert.
func (r *OrderRepo) firstTakenTx(ctx context.Context, tx *sql.Tx, tickets []model.Ticket) (*SeatError, error) {
	if len(tickets) == 0 {
		return nil, nil
	}
	var sb strings.Builder
	args := make([]interface{}, 0, len(tickets)*3)
	for i, t := range tickets {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?,?,?)")
		args = append(args, t.MovieSessionID, t.Row, t.Seat)
	}
	q := `SELECT movie_session_id, row_no, seat_no FROM tickets
	      WHERE (movie_session_id, row_no, seat_no) IN (` + sb.String() + `)
	      LIMIT 1 FOR UPDATE`
	var se SeatError
	err := tx.QueryRowContext(ctx, q, args...).Scan(&se.SessionID, &se.Row, &se.Seat)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	se.Taken = true
	return &se, nil
}

// ListForUser returns orders newest first. Staff callers see every order;
// other callers only their own. Tickets are attached with one batched
// IN query.
func (r *OrderRepo) ListForUser(ctx context.Context, userID uint64, staff bool) ([]model.Order, error) {
	q := "SELECT id, user_id, created_at FROM orders"
	args := []interface{}{}
	if !staff {
		q += " WHERE user_id = ?"
		args = append(args, userID)
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Tickets = []model.Ticket{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]interface{}, 0, len(orders))
	placeholders := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		placeholders = append(placeholders, "?")
	}
	ticketQ := `SELECT id, movie_session_id, order_id, row_no, seat_no FROM tickets
	            WHERE order_id IN (` + strings.Join(placeholders, ",") + `)
	            ORDER BY order_id, id`
	trows, err := r.db.QueryContext(ctx, ticketQ, ids...)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var t model.Ticket
		if err := trows.Scan(&t.ID, &t.MovieSessionID, &t.OrderID, &t.Row, &t.Seat); err != nil {
			return nil, err
		}
		if i, ok := index[t.OrderID]; ok {
			orders[i].Tickets = append(orders[i].Tickets, t)
		}
	}
	return orders, trows.Err()
}
