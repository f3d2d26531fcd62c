// Package database opens the MySQL connection pool and applies the
// schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Options carries everything Open needs: credentials, the target
// database and the pool limits, all sourced from config.
type Options struct {
	User string
	Pass string
	Host string
	Port string
	Name string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// dsn renders the go-sql-driver connection string. parseTime makes
// DATETIME columns scan into time.Time, and loc=UTC keeps every
// timestamp in one zone regardless of the server setting.
func (o Options) dsn() string {
	auth := o.User
	if o.Pass != "" {
		auth = o.User + ":" + o.Pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, o.Host, o.Port, o.Name)
}

// Open connects to MySQL, applies the pool limits and verifies the
// connection with a bounded ping. Zero or negative pool values fall
// back to defaults sized for a single API instance.
func Open(opts Options) (*sql.DB, error) {
	db, err := sql.Open("mysql", opts.dsn())
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 25
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = opts.MaxOpenConns
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
