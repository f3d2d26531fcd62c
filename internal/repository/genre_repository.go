package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

type GenreRepo struct{ db *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{db: db} }

// Create inserts a genre and populates its generated ID. A duplicate name
// hits the genres.name unique key and is reported as ErrGenreExists.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	g.Name = strings.TrimSpace(g.Name)
	res, err := r.db.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", g.Name)
	if err != nil {
		if isDuplicate(err) {
			return ErrGenreExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// List returns all genres ordered by id.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM genres ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Genre, 0)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
