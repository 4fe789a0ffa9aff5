package utils_test

import (
	"testing"
	"time"

	"fotoshare-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken(7, 2)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := utils.ValidateToken(token)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, float64(2), claims["role_id"])
}

func TestUserTokenTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken(7, 2)
	require.NoError(t, err)

	// Token diobok-obok dikit = signature gak cocok
	_, err = utils.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestShareCapability(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	encoded, err := utils.GenerateShareCapability("tok-abc", 5, 9)
	require.NoError(t, err)

	capability, err := utils.ValidateShareCapability(encoded)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", capability.ShareToken)
	assert.Equal(t, uint64(5), capability.ShareID)
	assert.Equal(t, uint64(9), capability.AlbumID)
}

func TestShareCapabilityExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// Token dengan exp lampau, ditandatangani secret yang sama
	claims := jwt.MapClaims{
		"share_token": "tok-abc",
		"share_id":    5,
		"album_id":    9,
		"exp":         time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = utils.ValidateShareCapability(expired)
	assert.Error(t, err)
}

func TestShareCapabilityGarbage(t *testing.T) {
	_, err := utils.ValidateShareCapability("")
	assert.Error(t, err)

	_, err = utils.ValidateShareCapability("bukan.jwt.beneran")
	assert.Error(t, err)
}
