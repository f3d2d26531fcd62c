package database

import (
	"context"
	"database/sql"
)

// Statements are ordered so that referenced tables exist before their
// foreign keys. All ON DELETE actions are declared explicitly: deleting a
// movie, hall or session removes the dependent session/ticket rows, and the
// unique key on tickets guarantees a seat can be sold at most once per
// session.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_staff      TINYINT(1) NOT NULL DEFAULT 0,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS auth_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_auth_tokens_hash (token_hash),
		CONSTRAINT fk_auth_tokens_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS genres (
		id   BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		UNIQUE KEY uq_genres_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS actors (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL,
		last_name  VARCHAR(255) NOT NULL
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS cinema_halls (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name         VARCHAR(255) NOT NULL,
		rows_count   INT NOT NULL,
		seats_in_row INT NOT NULL
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS movies (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		duration    INT NOT NULL,
		image       VARCHAR(512) NULL,
		KEY idx_movies_title (title)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS movie_genres (
		movie_id BIGINT UNSIGNED NOT NULL,
		genre_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (movie_id, genre_id),
		CONSTRAINT fk_movie_genres_movie FOREIGN KEY (movie_id)
			REFERENCES movies (id) ON DELETE CASCADE,
		CONSTRAINT fk_movie_genres_genre FOREIGN KEY (genre_id)
			REFERENCES genres (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS movie_actors (
		movie_id BIGINT UNSIGNED NOT NULL,
		actor_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (movie_id, actor_id),
		CONSTRAINT fk_movie_actors_movie FOREIGN KEY (movie_id)
			REFERENCES movies (id) ON DELETE CASCADE,
		CONSTRAINT fk_movie_actors_actor FOREIGN KEY (actor_id)
			REFERENCES actors (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS movie_sessions (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		show_time      DATETIME NOT NULL,
		cinema_hall_id BIGINT UNSIGNED NOT NULL,
		movie_id       BIGINT UNSIGNED NOT NULL,
		CONSTRAINT fk_sessions_hall FOREIGN KEY (cinema_hall_id)
			REFERENCES cinema_halls (id) ON DELETE CASCADE,
		CONSTRAINT fk_sessions_movie FOREIGN KEY (movie_id)
			REFERENCES movies (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS orders (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_orders_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		movie_session_id BIGINT UNSIGNED NOT NULL,
		order_id         BIGINT UNSIGNED NOT NULL,
		row_no           INT NOT NULL,
		seat_no          INT NOT NULL,
		UNIQUE KEY uq_tickets_seat (movie_session_id, row_no, seat_no),
		CONSTRAINT fk_tickets_session FOREIGN KEY (movie_session_id)
			REFERENCES movie_sessions (id) ON DELETE CASCADE,
		CONSTRAINT fk_tickets_order FOREIGN KEY (order_id)
			REFERENCES orders (id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// Migrate creates all tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
