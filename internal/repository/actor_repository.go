package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

type ActorRepo struct{ db *sql.DB }

func NewActorRepo(db *sql.DB) *ActorRepo { return &ActorRepo{db: db} }

// Create inserts an actor and populates its generated ID.
func (r *ActorRepo) Create(ctx context.Context, a *model.Actor) error {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO actors (first_name, last_name) VALUES (?,?)",
		a.FirstName, a.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// List returns all actors ordered by id.
func (r *ActorRepo) List(ctx context.Context) ([]model.Actor, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, first_name, last_name FROM actors ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Actor, 0)
	for rows.Next() {
		var a model.Actor
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
