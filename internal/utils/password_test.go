package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestion-app/gestion_backend/internal/utils"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-passphrase")

	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("s3cret-passphrase", hash))
	assert.False(t, utils.CheckPasswordHash("wrong-passphrase", hash))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := utils.HashPassword(strings.Repeat("a", 73))

	assert.ErrorIs(t, err, utils.ErrPasswordTooLong)
}
