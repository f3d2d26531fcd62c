package repository_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/database"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/repository"
)

// startMySQL launches a throwaway MySQL container, opens a pool against
// it and applies the schema. The container is torn down with the test.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "test",
				"MYSQL_DATABASE":      "cinema_test",
			},
			// mysqld logs "ready for connections" once for the init
			// server and once for the real one.
			WaitingFor: wait.ForLog("ready for connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start MySQL container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306")
	require.NoError(t, err)

	opts := database.Options{
		User: "root",
		Pass: "test",
		Host: host,
		Port: port.Port(),
		Name: "cinema_test",
	}
	var db *sql.DB
	// The server can still refuse connections for a moment after the
	// log line appears.
	for attempt := 0; attempt < 10; attempt++ {
		db, err = database.Open(opts)
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	return db
}

func countRows(t *testing.T, db *sql.DB, query string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

func TestOrderRepoAgainstMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MySQL integration test in short mode")
	}

	db := startMySQL(t)
	ctx := context.Background()

	users := repository.NewUserRepo(db)
	halls := repository.NewHallRepo(db)
	movies := repository.NewMovieRepo(db)
	sessions := repository.NewSessionRepo(db)
	orders := repository.NewOrderRepo(db)

	alice, err := users.Create(ctx, "alice@example.com", "pa55word", 4)
	require.NoError(t, err)
	bob, err := users.Create(ctx, "bob@example.com", "pa55word", 4)
	require.NoError(t, err)
	admin, err := users.Create(ctx, "admin@example.com", "pa55word", 4)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "UPDATE users SET is_staff=1 WHERE id=?", admin)
	require.NoError(t, err)

	hall := model.CinemaHall{Name: "Blue", Rows: 2, SeatsInRow: 3}
	require.NoError(t, halls.Create(ctx, &hall))
	movie := model.Movie{Title: "Dune", Description: "Arrakis", Duration: 155}
	require.NoError(t, movies.Create(ctx, &movie, nil, nil))

	showTime := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	session := model.MovieSession{ShowTime: showTime, CinemaHallID: hall.ID, MovieID: movie.ID}
	require.NoError(t, sessions.Create(ctx, &session))
	session2 := model.MovieSession{ShowTime: showTime.Add(3 * time.Hour), CinemaHallID: hall.ID, MovieID: movie.ID}
	require.NoError(t, sessions.Create(ctx, &session2))

	t.Run("creates an order with its tickets", func(t *testing.T) {
		order, err := orders.CreateWithTickets(ctx, alice, []model.Ticket{
			{MovieSessionID: session.ID, Row: 1, Seat: 1},
			{MovieSessionID: session.ID, Row: 1, Seat: 2},
		})
		require.NoError(t, err)
		assert.NotZero(t, order.ID)
		assert.Equal(t, alice, order.UserID)
		assert.False(t, order.CreatedAt.IsZero())
		require.Len(t, order.Tickets, 2)
		for _, tk := range order.Tickets {
			assert.NotZero(t, tk.ID)
			assert.Equal(t, order.ID, tk.OrderID)
		}
	})

	t.Run("booking a sold seat rolls back the whole order", func(t *testing.T) {
		before := countRows(t, db, "SELECT COUNT(*) FROM orders WHERE user_id=?", bob)

		_, err := orders.CreateWithTickets(ctx, bob, []model.Ticket{
			{MovieSessionID: session.ID, Row: 2, Seat: 3}, // free
			{MovieSessionID: session.ID, Row: 1, Seat: 1}, // sold above
		})
		var seatErr *repository.SeatError
		require.ErrorAs(t, err, &seatErr)
		assert.True(t, seatErr.Taken)
		assert.Equal(t, session.ID, seatErr.SessionID)
		assert.Equal(t, 1, seatErr.Row)
		assert.Equal(t, 1, seatErr.Seat)
		require.ErrorIs(t, err, repository.ErrSeatTaken)

		// The free seat must not have been kept.
		assert.Zero(t, countRows(t, db,
			"SELECT COUNT(*) FROM tickets WHERE movie_session_id=? AND row_no=2 AND seat_no=3", session.ID))
		assert.Equal(t, before, countRows(t, db, "SELECT COUNT(*) FROM orders WHERE user_id=?", bob))
	})

	t.Run("rejects seats outside the hall geometry", func(t *testing.T) {
		_, err := orders.CreateWithTickets(ctx, bob, []model.Ticket{
			{MovieSessionID: session.ID, Row: 3, Seat: 1},
		})
		var seatErr *repository.SeatError
		require.ErrorAs(t, err, &seatErr)
		assert.False(t, seatErr.Taken)
		assert.NotErrorIs(t, err, repository.ErrSeatTaken)
	})

	t.Run("rejects unknown sessions", func(t *testing.T) {
		_, err := orders.CreateWithTickets(ctx, bob, []model.Ticket{
			{MovieSessionID: 999999, Row: 1, Seat: 1},
		})
		require.ErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("concurrent bookings of one seat sell it once", func(t *testing.T) {
		results := make([]error, 2)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, results[i] = orders.CreateWithTickets(ctx, bob, []model.Ticket{
					{MovieSessionID: session.ID, Row: 2, Seat: 1},
				})
			}()
		}
		wg.Wait()

		var sold, conflicts int
		for _, err := range results {
			switch {
			case err == nil:
				sold++
			default:
				require.ErrorIs(t, err, repository.ErrSeatTaken)
				conflicts++
			}
		}
		assert.Equal(t, 1, sold)
		assert.Equal(t, 1, conflicts)
		assert.Equal(t, 1, countRows(t, db,
			"SELECT COUNT(*) FROM tickets WHERE movie_session_id=? AND row_no=2 AND seat_no=1", session.ID))
	})

	t.Run("opposite session order in payloads does not deadlock", func(t *testing.T) {
		var wg sync.WaitGroup
		var errA, errB error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errA = orders.CreateWithTickets(ctx, alice, []model.Ticket{
				{MovieSessionID: session2.ID, Row: 1, Seat: 1},
				{MovieSessionID: session.ID, Row: 2, Seat: 2},
			})
		}()
		go func() {
			defer wg.Done()
			_, errB = orders.CreateWithTickets(ctx, bob, []model.Ticket{
				{MovieSessionID: session.ID, Row: 2, Seat: 3},
				{MovieSessionID: session2.ID, Row: 1, Seat: 2},
			})
		}()
		wg.Wait()
		require.NoError(t, errA)
		require.NoError(t, errB)
	})

	t.Run("non-staff callers only see their own orders", func(t *testing.T) {
		mine, err := orders.ListForUser(ctx, alice, false)
		require.NoError(t, err)
		require.NotEmpty(t, mine)
		for _, o := range mine {
			assert.Equal(t, alice, o.UserID)
			assert.NotEmpty(t, o.Tickets)
		}
		for i := 1; i < len(mine); i++ {
			assert.Greater(t, mine[i-1].ID, mine[i].ID, "orders must come back newest first")
		}
	})

	t.Run("staff callers see every order", func(t *testing.T) {
		all, err := orders.ListForUser(ctx, admin, true)
		require.NoError(t, err)

		owners := make(map[uint64]bool)
		for _, o := range all {
			owners[o.UserID] = true
		}
		assert.True(t, owners[alice])
		assert.True(t, owners[bob])
		assert.Equal(t, countRows(t, db, "SELECT COUNT(*) FROM orders"), len(all))
	})

	t.Run("deleting a session cascades to its tickets", func(t *testing.T) {
		require.Positive(t, countRows(t, db,
			"SELECT COUNT(*) FROM tickets WHERE movie_session_id=?", session2.ID))

		require.NoError(t, sessions.Delete(ctx, session2.ID))

		assert.Zero(t, countRows(t, db,
			"SELECT COUNT(*) FROM tickets WHERE movie_session_id=?", session2.ID))
	})
}
