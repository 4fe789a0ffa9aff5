package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"fotoshare-backend/internal/models"

	"gorm.io/gorm"
)

// Aturan main OTP
const (
	OTPLength       = 6
	OTPTTL          = 5 * time.Minute  // Umur kode
	OTPMaxAttempts  = 5                // Maksimal salah input
	OTPSendWindow   = 15 * time.Minute // Jendela rate limit kirim
	OTPMaxPerWindow = 3                // Maksimal kirim per jendela
)

var (
	ErrOTPRateLimited     = errors.New("terlalu sering minta OTP, coba lagi nanti")
	ErrOTPInvalid         = errors.New("kode OTP salah")
	ErrOTPExpired         = errors.New("kode OTP sudah kadaluarsa")
	ErrOTPTooManyAttempts = errors.New("terlalu banyak percobaan, minta kode baru")
)

// SendOTP bikin kode baru untuk (identifier, purpose).
// Rate limit-nya counter di DB per jendela 15 menit, BUKAN map di memory,
// jadi tetap kehitung walau server restart atau instance-nya lebih dari satu.
// Counter dicek & dinaikkan di transaksi yang sama dengan insert OTP-nya.
func SendOTP(db *gorm.DB, identifier, purpose string) (*models.OTPCode, error) {
	code, err := generateOTPCode()
	if err != nil {
		return nil, err
	}

	otp := models.OTPCode{
		Identifier: identifier,
		Purpose:    purpose,
		Code:       code,
		ExpiresAt:  time.Now().Add(OTPTTL),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		windowStart := time.Now().Truncate(OTPSendWindow)

		// 1. Ambil/bikin counter jendela ini
		var window models.OTPWindow
		err := tx.Where("identifier = ? AND purpose = ? AND window_start = ?", identifier, purpose, windowStart).
			First(&window).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			window = models.OTPWindow{
				Identifier:  identifier,
				Purpose:     purpose,
				WindowStart: windowStart,
				Count:       1,
			}
			if err := tx.Create(&window).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			// Naikkan counter pakai UPDATE bersyarat: cuma kena kalau
			// kuotanya masih ada. Dua request barengan gak bisa
			// dua-duanya lolos di jatah terakhir.
			res := tx.Model(&models.OTPWindow{}).
				Where("id = ? AND count < ?", window.ID, OTPMaxPerWindow).
				Update("count", gorm.Expr("count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrOTPRateLimited
			}
		}

		// 2. Kode lama yang belum kepakai langsung hangus
		if err := tx.Model(&models.OTPCode{}).
			Where("identifier = ? AND purpose = ? AND is_used = ?", identifier, purpose, false).
			Update("is_used", true).Error; err != nil {
			return err
		}

		// 3. Simpan kode baru
		return tx.Create(&otp).Error
	})
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// VerifyOTP cek kode inputan user. Salah = attempts naik (increment di DB).
// Lewat 5x salah, kodenya mati dan harus minta baru.
func VerifyOTP(db *gorm.DB, identifier, purpose, code string) error {
	var otp models.OTPCode
	err := db.Where("identifier = ? AND purpose = ? AND is_used = ?", identifier, purpose, false).
		Order("created_at desc").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOTPInvalid
		}
		return err
	}

	if time.Now().After(otp.ExpiresAt) {
		return ErrOTPExpired
	}

	if otp.Attempts >= OTPMaxAttempts {
		return ErrOTPTooManyAttempts
	}

	if otp.Code != code {
		// Catat percobaan gagal. Pakai expr biar atomic, bukan baca-tulis biasa
		db.Model(&otp).Update("attempts", gorm.Expr("attempts + 1"))
		return ErrOTPInvalid
	}

	// Sukses: kode langsung hangus (sekali pakai)
	return db.Model(&otp).Update("is_used", true).Error
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
