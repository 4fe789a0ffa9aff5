package services_test

import (
	"testing"
	"time"

	"fotoshare-backend/internal/models"
	"fotoshare-backend/internal/services"
	"fotoshare-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// makeShare bikin album + share siap pakai buat test
func makeShare(t *testing.T, db *gorm.DB, token, password string, expiresAt *time.Time) *models.AlbumShare {
	t.Helper()

	album := models.Album{PhotographerID: 1, Title: "Test Album"}
	require.NoError(t, db.Create(&album).Error)

	var passwordHash string
	if password != "" {
		hash, err := utils.HashPassword(password)
		require.NoError(t, err)
		passwordHash = hash
	}

	share := models.AlbumShare{
		AlbumID:        album.ID,
		PhotographerID: 1,
		ShareMethod:    models.ShareMethodLink,
		AccessToken:    token,
		PasswordHash:   passwordHash,
		ExpiresAt:      expiresAt,
		AllowView:      true,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&share).Error)
	return &share
}

func TestResolveShare(t *testing.T) {
	db := setupTestDB(t)

	t.Run("token ngasal", func(t *testing.T) {
		_, err := services.ResolveShare(db, "token-ngasal")
		assert.ErrorIs(t, err, services.ErrShareNotFound)
	})

	t.Run("token kosong", func(t *testing.T) {
		_, err := services.ResolveShare(db, "")
		assert.ErrorIs(t, err, services.ErrShareNotFound)
	})

	t.Run("share nonaktif dianggap gak ada", func(t *testing.T) {
		share := makeShare(t, db, "tok-nonaktif", "", nil)
		db.Model(share).Update("is_active", false)

		_, err := services.ResolveShare(db, "tok-nonaktif")
		assert.ErrorIs(t, err, services.ErrShareNotFound)
	})

	t.Run("share kadaluarsa dibedain dari not found", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		makeShare(t, db, "tok-expired", "", &past)

		_, err := services.ResolveShare(db, "tok-expired")
		assert.ErrorIs(t, err, services.ErrShareExpired)
	})

	t.Run("share valid", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		makeShare(t, db, "tok-valid", "", &future)

		share, err := services.ResolveShare(db, "tok-valid")
		require.NoError(t, err)
		assert.Equal(t, "tok-valid", share.AccessToken)
	})
}

func TestAuthorizeViewWithoutPassword(t *testing.T) {
	db := setupTestDB(t)
	makeShare(t, db, "tok-bebas", "", nil)

	// Tanpa password = langsung boleh masuk, gak butuh capability apa pun
	share, err := services.AuthorizeView(db, "tok-bebas", "")
	require.NoError(t, err)
	assert.False(t, services.RequiresPassword(share))
}

func TestPasswordFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	db := setupTestDB(t)
	share := makeShare(t, db, "tok-rahasia", "abc123", nil)
	require.True(t, services.RequiresPassword(share))

	t.Run("tanpa capability disuruh masukin password", func(t *testing.T) {
		_, err := services.AuthorizeView(db, "tok-rahasia", "")
		assert.ErrorIs(t, err, services.ErrPasswordRequired)
	})

	t.Run("password salah ditolak, gak dapat capability", func(t *testing.T) {
		capability, err := services.VerifySharePassword(share, "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidPassword)
		assert.Empty(t, capability)
	})

	t.Run("password bener dapat capability yang diterima gerbang", func(t *testing.T) {
		capability, err := services.VerifySharePassword(share, "abc123")
		require.NoError(t, err)
		require.NotEmpty(t, capability)

		authorized, err := services.AuthorizeView(db, "tok-rahasia", capability)
		require.NoError(t, err)
		assert.Equal(t, share.ID, authorized.ID)
	})

	t.Run("capability share lain ditolak", func(t *testing.T) {
		other := makeShare(t, db, "tok-lain", "abc123", nil)
		capability, err := services.VerifySharePassword(other, "abc123")
		require.NoError(t, err)

		_, err = services.AuthorizeView(db, "tok-rahasia", capability)
		assert.ErrorIs(t, err, services.ErrPasswordRequired)
	})

	t.Run("capability kadaluarsa ditolak", func(t *testing.T) {
		// Bikin token yang exp-nya udah lewat, ditandatangani secret yang sama
		claims := jwt.MapClaims{
			"share_token": share.AccessToken,
			"share_id":    share.ID,
			"album_id":    share.AlbumID,
			"exp":         time.Now().Add(-time.Minute).Unix(),
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = services.AuthorizeView(db, "tok-rahasia", expired)
		assert.ErrorIs(t, err, services.ErrPasswordRequired)
	})
}

func TestRecordView(t *testing.T) {
	db := setupTestDB(t)
	share := makeShare(t, db, "tok-view", "", nil)

	// Sengaja dua kali: view count itu hitungan mentah, bukan unique visitor
	require.NoError(t, services.RecordView(db, share))
	require.NoError(t, services.RecordView(db, share))

	var updated models.AlbumShare
	require.NoError(t, db.First(&updated, share.ID).Error)
	assert.Equal(t, int64(2), updated.ViewCount)
	assert.NotNil(t, updated.LastViewedAt)

	var album models.Album
	require.NoError(t, db.First(&album, share.AlbumID).Error)
	assert.Equal(t, int64(2), album.ViewCount)
}
