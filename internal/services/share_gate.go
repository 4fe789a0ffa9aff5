package services

import (
	"errors"
	"time"

	"fotoshare-backend/internal/models"
	"fotoshare-backend/pkg/utils"

	"gorm.io/gorm"
)

// Error-error gerbang share. Sengaja dibedain satu-satu supaya frontend
// bisa nampilin halaman yang bener (404 vs expired vs form password).
var (
	ErrShareNotFound    = errors.New("link share tidak ditemukan")
	ErrShareExpired     = errors.New("link share sudah kadaluarsa")
	ErrPasswordRequired = errors.New("share ini butuh password")
	ErrInvalidPassword  = errors.New("password share salah")
)

// ResolveShare cari share berdasarkan token.
// Share nonaktif = dianggap gak ada. Expired dibedain dari not found.
func ResolveShare(db *gorm.DB, token string) (*models.AlbumShare, error) {
	if token == "" {
		return nil, ErrShareNotFound
	}

	var share models.AlbumShare
	err := db.Where("access_token = ? AND is_active = ?", token, true).First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}

	if share.ExpiresAt != nil && share.ExpiresAt.Before(time.Now()) {
		return nil, ErrShareExpired
	}

	return &share, nil
}

// RequiresPassword: share dikunci password atau enggak
func RequiresPassword(share *models.AlbumShare) bool {
	return share.PasswordHash != ""
}

// VerifySharePassword cek password inputan client. Kalau bener, client dapat
// capability token 1 jam yang scope-nya cuma buat share ini.
// Catatan: gak ada batas percobaan di layer ini, rate limiter IP yang jaga.
func VerifySharePassword(share *models.AlbumShare, password string) (string, error) {
	if !RequiresPassword(share) {
		// Share tanpa password gak perlu capability
		return "", nil
	}

	if !utils.CheckPassword(password, share.PasswordHash) {
		return "", ErrInvalidPassword
	}

	return utils.GenerateShareCapability(share.AccessToken, share.ID, share.AlbumID)
}

// AuthorizeView = satu pintu keputusan "boleh liat album ini gak".
// Urutannya: resolve token -> cek expired -> cek password/capability.
// Capability harus valid, belum expired, DAN memang buat token ini.
func AuthorizeView(db *gorm.DB, token string, capability string) (*models.AlbumShare, error) {
	share, err := ResolveShare(db, token)
	if err != nil {
		return nil, err
	}

	if RequiresPassword(share) {
		claims, err := utils.ValidateShareCapability(capability)
		if err != nil || claims.ShareToken != share.AccessToken {
			// Capability kosong/expired/punya share lain -> suruh masukin password
			return nil, ErrPasswordRequired
		}
	}

	return share, nil
}

// RecordView nambah counter view di share + album dan update last_viewed_at.
// Ini hitungan view mentah, bukan unique visitor: dibuka 5x ya nambah 5.
// Increment-nya pakai ekspresi SQL biar gak ketimpa antar request.
func RecordView(db *gorm.DB, share *models.AlbumShare) error {
	now := time.Now()

	err := db.Model(&models.AlbumShare{}).
		Where("id = ?", share.ID).
		Updates(map[string]interface{}{
			"view_count":     gorm.Expr("view_count + 1"),
			"last_viewed_at": now,
		}).Error
	if err != nil {
		return err
	}

	return db.Model(&models.Album{}).
		Where("id = ?", share.AlbumID).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}
