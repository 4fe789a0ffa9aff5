package services_test

import (
	"testing"
	"time"

	"fotoshare-backend/internal/models"
	"fotoshare-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOTPRateLimit(t *testing.T) {
	db := setupTestDB(t)

	// Jatah 3x per jendela
	for i := 0; i < services.OTPMaxPerWindow; i++ {
		_, err := services.SendOTP(db, "budi@mail.com", "verify_email")
		require.NoError(t, err)
	}

	// Keempat kalinya ditolak
	_, err := services.SendOTP(db, "budi@mail.com", "verify_email")
	assert.ErrorIs(t, err, services.ErrOTPRateLimited)

	// Purpose lain punya jatah sendiri
	_, err = services.SendOTP(db, "budi@mail.com", "reset_password")
	assert.NoError(t, err)

	// Identifier lain juga
	_, err = services.SendOTP(db, "siti@mail.com", "verify_email")
	assert.NoError(t, err)
}

func TestVerifyOTP(t *testing.T) {
	t.Run("kode bener sekali pakai", func(t *testing.T) {
		db := setupTestDB(t)
		otp, err := services.SendOTP(db, "budi@mail.com", "verify_email")
		require.NoError(t, err)

		require.NoError(t, services.VerifyOTP(db, "budi@mail.com", "verify_email", otp.Code))

		// Dipakai lagi gak bisa
		err = services.VerifyOTP(db, "budi@mail.com", "verify_email", otp.Code)
		assert.ErrorIs(t, err, services.ErrOTPInvalid)
	})

	t.Run("kode salah nambah hitungan percobaan", func(t *testing.T) {
		db := setupTestDB(t)
		otp, err := services.SendOTP(db, "budi@mail.com", "verify_email")
		require.NoError(t, err)

		err = services.VerifyOTP(db, "budi@mail.com", "verify_email", "000000")
		assert.ErrorIs(t, err, services.ErrOTPInvalid)

		var stored models.OTPCode
		require.NoError(t, db.First(&stored, otp.ID).Error)
		assert.Equal(t, 1, stored.Attempts)
	})

	t.Run("lewat 5x salah kodenya mati", func(t *testing.T) {
		db := setupTestDB(t)
		otp, err := services.SendOTP(db, "budi@mail.com", "verify_email")
		require.NoError(t, err)

		for i := 0; i < services.OTPMaxAttempts; i++ {
			err := services.VerifyOTP(db, "budi@mail.com", "verify_email", "000000")
			assert.ErrorIs(t, err, services.ErrOTPInvalid)
		}

		// Sudah 5x salah: kode benar pun ditolak
		err = services.VerifyOTP(db, "budi@mail.com", "verify_email", otp.Code)
		assert.ErrorIs(t, err, services.ErrOTPTooManyAttempts)
	})

	t.Run("kode kadaluarsa", func(t *testing.T) {
		db := setupTestDB(t)
		otp, err := services.SendOTP(db, "budi@mail.com", "verify_email")
		require.NoError(t, err)

		db.Model(&models.OTPCode{}).Where("id = ?", otp.ID).
			Update("expires_at", time.Now().Add(-time.Minute))

		err = services.VerifyOTP(db, "budi@mail.com", "verify_email", otp.Code)
		assert.ErrorIs(t, err, services.ErrOTPExpired)
	})

	t.Run("minta kode baru bikin kode lama hangus", func(t *testing.T) {
		db := setupTestDB(t)
		first, err := services.SendOTP(db, "budi@mail.com", "verify_email")
		require.NoError(t, err)
		second, err := services.SendOTP(db, "budi@mail.com", "verify_email")
		require.NoError(t, err)

		// Kode lama gak laku lagi (kecuali kebetulan sama persis)
		if first.Code != second.Code {
			err = services.VerifyOTP(db, "budi@mail.com", "verify_email", first.Code)
			assert.ErrorIs(t, err, services.ErrOTPInvalid)
		}

		require.NoError(t, services.VerifyOTP(db, "budi@mail.com", "verify_email", second.Code))
	})
}
