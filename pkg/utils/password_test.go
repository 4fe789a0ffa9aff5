package utils_test

import (
	"testing"

	"fotoshare-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("abc123")
	require.NoError(t, err)
	assert.NotEqual(t, "abc123", hash) // Jangan sampai kesimpan plain

	assert.True(t, utils.CheckPassword("abc123", hash))
	assert.False(t, utils.CheckPassword("abc124", hash))
	assert.False(t, utils.CheckPassword("", hash))
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	// bcrypt pakai salt random, hash password sama harus beda hasilnya
	h1, err := utils.HashPassword("abc123")
	require.NoError(t, err)
	h2, err := utils.HashPassword("abc123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
