package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
)

// MovieRepo provides CRUD operations for movies and their genre/actor
// links. Relations are stored in the movie_genres and movie_actors
// junction tables and loaded in batches for listings.
type MovieRepo struct{ db *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// Create inserts a movie together with its genre and actor links in a
// single transaction. Referenced ids are verified up front: an id with no
// matching row yields ErrUnknownGenre or ErrUnknownActor and nothing is
// written.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie, genreIDs, actorIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := verifyIDsTx(ctx, tx, "genres", genreIDs, ErrUnknownGenre); err != nil {
		return err
	}
	if err := verifyIDsTx(ctx, tx, "actors", actorIDs, ErrUnknownActor); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO movies (title, description, duration) VALUES (?,?,?)",
		m.Title, m.Description, m.Duration)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	if err := insertLinksTx(ctx, tx, "movie_genres", "genre_id", m.ID, genreIDs); err != nil {
		return err
	}
	if err := insertLinksTx(ctx, tx, "movie_actors", "actor_id", m.ID, actorIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// verifyIDsTx checks that every id has a row in the named table.
func verifyIDsTx(ctx context.Context, tx *sql.Tx, table string, ids []uint64, missing error) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	q := "SELECT COUNT(DISTINCT id) FROM " + table + " WHERE id IN (" + strings.Join(placeholders, ",") + ")"
	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return err
	}
	distinct := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	if n != len(distinct) {
		return missing
	}
	return nil
}

// insertLinksTx bulk-inserts junction rows for one movie.
func insertLinksTx(ctx context.Context, tx *sql.Tx, table, column string, movieID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	query := "INSERT IGNORE INTO " + table + " (movie_id, " + column + ") VALUES "
	args := make([]interface{}, 0, len(ids)*2)
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "(?,?)"
		args = append(args, movieID, id)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// List returns all movies with their genres and actors populated. The
// relations are fetched with two batched IN queries instead of one query
// per movie.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, description, duration, image FROM movies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var m model.Movie
		var image sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Duration, &image); err != nil {
			return nil, err
		}
		if image.Valid {
			img := image.String
			m.Image = &img
		}
		m.Genres = []model.Genre{}
		m.Actors = []model.Actor{}
		index[m.ID] = len(movies)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return movies, nil
	}

	ids := make([]interface{}, 0, len(movies))
	placeholders := make([]string, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
		placeholders = append(placeholders, "?")
	}
	in := strings.Join(placeholders, ",")

	genreQ := `SELECT mg.movie_id, g.id, g.name
	           FROM movie_genres mg
	           JOIN genres g ON g.id = mg.genre_id
	           WHERE mg.movie_id IN (` + in + `)
	           ORDER BY mg.movie_id, g.id`
	grows, err := r.db.QueryContext(ctx, genreQ, ids...)
	if err != nil {
		return nil, err
	}
	defer grows.Close()
	for grows.Next() {
		var mid uint64
		var g model.Genre
		if err := grows.Scan(&mid, &g.ID, &g.Name); err != nil {
			return nil, err
		}
		if i, ok := index[mid]; ok {
			movies[i].Genres = append(movies[i].Genres, g)
		}
	}
	if err := grows.Err(); err != nil {
		return nil, err
	}

	actorQ := `SELECT ma.movie_id, a.id, a.first_name, a.last_name
	           FROM movie_actors ma
	           JOIN actors a ON a.id = ma.actor_id
	           WHERE ma.movie_id IN (` + in + `)
	           ORDER BY ma.movie_id, a.id`
	arows, err := r.db.QueryContext(ctx, actorQ, ids...)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	for arows.Next() {
		var mid uint64
		var a model.Actor
		if err := arows.Scan(&mid, &a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		if i, ok := index[mid]; ok {
			movies[i].Actors = append(movies[i].Actors, a)
		}
	}
	return movies, arows.Err()
}

// GetByID returns one movie with its relations, or ErrNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	var m model.Movie
	var image sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, description, duration, image FROM movies WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Title, &m.Description, &m.Duration, &image)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if image.Valid {
		img := image.String
		m.Image = &img
	}
	m.Genres = []model.Genre{}
	m.Actors = []model.Actor{}

	grows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.name FROM movie_genres mg
		 JOIN genres g ON g.id = mg.genre_id
		 WHERE mg.movie_id = ? ORDER BY g.id`, id)
	if err != nil {
		return nil, err
	}
	defer grows.Close()
	for grows.Next() {
		var g model.Genre
		if err := grows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		m.Genres = append(m.Genres, g)
	}
	if err := grows.Err(); err != nil {
		return nil, err
	}

	arows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.first_name, a.last_name FROM movie_actors ma
		 JOIN actors a ON a.id = ma.actor_id
		 WHERE ma.movie_id = ? ORDER BY a.id`, id)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	for arows.Next() {
		var a model.Actor
		if err := arows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		m.Actors = append(m.Actors, a)
	}
	return &m, arows.Err()
}

// UpdateImage persists the storage path of an uploaded poster.
func (r *MovieRepo) UpdateImage(ctx context.Context, id uint64, path string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE movies SET image=? WHERE id=?", path, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either the movie is gone or the path did not change; treat a
		// missing row as not found.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM movies WHERE id=? LIMIT 1", id).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}
