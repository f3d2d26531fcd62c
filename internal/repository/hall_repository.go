package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

type HallRepo struct{ db *sql.DB }

func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

// Create inserts a cinema hall and populates its generated ID. Geometry
// validation (positive rows/seats) happens in the handler before this
// point.
func (r *HallRepo) Create(ctx context.Context, h *model.CinemaHall) error {
	h.Name = strings.TrimSpace(h.Name)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO cinema_halls (name, rows_count, seats_in_row) VALUES (?,?,?)",
		h.Name, h.Rows, h.SeatsInRow)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// List returns all cinema halls ordered by id.
func (r *HallRepo) List(ctx context.Context) ([]model.CinemaHall, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, rows_count, seats_in_row FROM cinema_halls ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.CinemaHall, 0)
	for rows.Next() {
		var h model.CinemaHall
		if err := rows.Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
