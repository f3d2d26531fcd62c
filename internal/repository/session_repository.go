package repository

import (
	"context"
	"database/sql"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

// SessionRepo provides full CRUD for movie sessions. List and detail
// queries join the movie row so handlers can render the flattened
// movie_title/movie_image fields without extra round trips.
type SessionRepo struct{ db *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// Create inserts a session after verifying both foreign keys. An unknown
// hall or movie id yields ErrUnknownHall / ErrUnknownMovie.
func (r *SessionRepo) Create(ctx context.Context, s *model.MovieSession) error {
	if err := r.checkRefs(ctx, s); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO movie_sessions (show_time, cinema_hall_id, movie_id) VALUES (?,?,?)",
		s.ShowTime.UTC(), s.CinemaHallID, s.MovieID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

func (r *SessionRepo) checkRefs(ctx context.Context, s *model.MovieSession) error {
	var one int
	if err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM cinema_halls WHERE id=? LIMIT 1", s.CinemaHallID).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return ErrUnknownHall
		}
		return err
	}
	if err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM movies WHERE id=? LIMIT 1", s.MovieID).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return ErrUnknownMovie
		}
		return err
	}
	return nil
}

const sessionSelect = `SELECT ms.id, ms.show_time, ms.cinema_hall_id, ms.movie_id, m.title, m.image
	FROM movie_sessions ms
	JOIN movies m ON m.id = ms.movie_id`

func scanSession(row interface{ Scan(...interface{}) error }) (model.MovieSession, error) {
	var s model.MovieSession
	var image sql.NullString
	err := row.Scan(&s.ID, &s.ShowTime, &s.CinemaHallID, &s.MovieID, &s.MovieTitle, &image)
	if err != nil {
		return s, err
	}
	if image.Valid {
		img := image.String
		s.MovieImage = &img
	}
	return s, nil
}

// List returns all sessions ordered by show time.
func (r *SessionRepo) List(ctx context.Context) ([]model.MovieSession, error) {
	rows, err := r.db.QueryContext(ctx, sessionSelect+" ORDER BY ms.show_time, ms.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MovieSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID returns one session or ErrNotFound.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.MovieSession, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, sessionSelect+" WHERE ms.id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update replaces a session's fields after verifying the foreign keys.
// Returns ErrNotFound when the session does not exist.
func (r *SessionRepo) Update(ctx context.Context, s *model.MovieSession) error {
	if err := r.checkRefs(ctx, s); err != nil {
		return err
	}
	var one int
	if err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM movie_sessions WHERE id=? LIMIT 1", s.ID).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE movie_sessions SET show_time=?, cinema_hall_id=?, movie_id=? WHERE id=?",
		s.ShowTime.UTC(), s.CinemaHallID, s.MovieID, s.ID)
	return err
}

// Delete removes a session; its tickets are removed by the declared
// ON DELETE CASCADE action. Returns ErrNotFound when no row was deleted.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movie_sessions WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
