package models

import (
	"time"

	"gorm.io/gorm"
)

// User merepresentasikan tabel 'users' di database
type User struct {
	ID           uint64         `gorm:"primaryKey" json:"id"`
	RoleID       uint           `gorm:"not null" json:"role_id"`
	FullName     string         `gorm:"size:100;not null" json:"full_name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // json:"-" artinya field ini TIDAK AKAN dikirim balik ke frontend (rahasia)
	Phone        string         `gorm:"column:phone_number;size:20;unique" json:"phone"`
	StudioName   string         `gorm:"size:100" json:"studio_name"` // Khusus fotografer, nama studio/brand
	FCMToken     string         `gorm:"size:255" json:"-"`
	IsVerified   bool           `gorm:"default:false" json:"is_verified"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relasi (Has Many)
	Albums []Album `gorm:"foreignKey:PhotographerID" json:"albums,omitempty"`
}

// Struct untuk menangkap Input Register dari user
type RegisterInput struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	RoleID     uint   `json:"role_id" binding:"required,oneof=2 3"` // 2:Fotografer, 3:Klien (Admin gak boleh lewat sini)
	Phone      string `json:"phone" binding:"required"`
	StudioName string `json:"studio_name"`
}

// Struct untuk menangkap Input Login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FCMToken string `json:"fcm_token"` // Opsional, dikirim aplikasi mobile
}

// Input kirim & verifikasi OTP
type SendOTPInput struct {
	Identifier string `json:"identifier" binding:"required"` // Email atau No HP
	Purpose    string `json:"purpose" binding:"required,oneof=verify_email reset_password"`
}

type VerifyOTPInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Purpose    string `json:"purpose" binding:"required,oneof=verify_email reset_password"`
	Code       string `json:"code" binding:"required,len=6"`
}
