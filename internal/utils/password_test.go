package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/utils"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := utils.HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, utils.VerifyPassword(hash, "s3cret"))
	assert.False(t, utils.VerifyPassword(hash, "S3cret"))
	assert.False(t, utils.VerifyPassword(hash, ""))
}

func TestHashPasswordClampsInvalidCost(t *testing.T) {
	// A cost above bcrypt's maximum would otherwise be an error; the
	// helper falls back to the default cost instead.
	hash, err := utils.HashPassword("s3cret", 99)
	require.NoError(t, err)
	assert.Contains(t, hash, "$10$")
	assert.True(t, utils.VerifyPassword(hash, "s3cret"))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := utils.HashPassword("same-password", 4)
	require.NoError(t, err)
	h2, err := utils.HashPassword("same-password", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
