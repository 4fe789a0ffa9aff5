package models

import "time"

// OTPCode = kode OTP yang dikirim ke email/HP user.
// Sekali pakai, ada masa berlaku, dan dibatasi 5x percobaan salah.
type OTPCode struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Identifier string    `gorm:"index;size:100;not null" json:"identifier"` // Email atau No HP
	Purpose    string    `gorm:"index;size:30;not null" json:"purpose"`     // verify_email / reset_password
	Code       string    `gorm:"size:10;not null" json:"-"`
	Attempts   int       `gorm:"default:0" json:"attempts"`
	IsUsed     bool      `gorm:"default:false" json:"is_used"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// OTPWindow = counter rate limit kirim OTP per (identifier, purpose, window).
// Dulu ini map di memory, sekarang disimpan di DB biar aman kalau server
// restart atau jalan lebih dari satu instance.
type OTPWindow struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Identifier  string    `gorm:"index:idx_otp_window,unique;size:100;not null" json:"identifier"`
	Purpose     string    `gorm:"index:idx_otp_window,unique;size:30;not null" json:"purpose"`
	WindowStart time.Time `gorm:"index:idx_otp_window,unique;not null" json:"window_start"`
	Count       int       `gorm:"default:0" json:"count"`
}
