package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsDSN(t *testing.T) {
	opts := Options{User: "cinema", Pass: "s3cret", Host: "db", Port: "3306", Name: "cinema"}
	assert.Equal(t,
		"cinema:s3cret@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC",
		opts.dsn())
}

func TestOptionsDSNNoPassword(t *testing.T) {
	opts := Options{User: "root", Host: "127.0.0.1", Port: "3307", Name: "test"}
	assert.Equal(t,
		"root@tcp(127.0.0.1:3307)/test?charset=utf8mb4&parseTime=true&loc=UTC",
		opts.dsn())
}
