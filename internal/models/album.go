package models

import (
	"time"

	"gorm.io/gorm"
)

// Album adalah galeri milik fotografer, isinya banyak Photo
type Album struct {
	ID             uint64         `gorm:"primaryKey" json:"id"`
	PhotographerID uint64         `gorm:"index;not null" json:"photographer_id"`
	Title          string         `gorm:"size:150;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	EventDate      *time.Time     `json:"event_date"` // Pointer karena bisa NULL
	CoverPhotoID   *uint64        `json:"cover_photo_id"`
	ViewCount      int64          `gorm:"default:0" json:"view_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"` // Soft delete, album gak pernah bener-bener dihapus

	// Relasi (Preload) biar pas query datanya lengkap
	Photos       []Photo `gorm:"foreignKey:AlbumID" json:"photos,omitempty"`
	Photographer *User   `gorm:"foreignKey:PhotographerID" json:"photographer,omitempty"`
}

// Photo adalah satu file foto di dalam album.
// Byte aslinya disimpan di object storage, di DB cuma metadata + path objeknya.
type Photo struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	AlbumID    uint64    `gorm:"index;not null" json:"album_id"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	ObjectPath string    `gorm:"size:255;not null" json:"-"` // Path di bucket, jangan bocor ke client
	MimeType   string    `gorm:"size:50" json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	SortOrder  int       `gorm:"default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateAlbumInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	EventDate   *time.Time `json:"event_date"` // Format: 2025-11-20T08:00:00Z
}

type AddPhotoInput struct {
	FileName  string `json:"file_name" binding:"required"`
	MimeType  string `json:"mime_type" binding:"required"`
	SizeBytes int64  `json:"size_bytes"`
}

// CreditPackage = paket kredit yang bisa dibeli (mirip tabel services dulu)
type CreditPackage struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:100;not null" json:"name"`
	Credits  int64   `gorm:"not null" json:"credits"`
	Price    float64 `gorm:"not null" json:"price"` // Harga rupiah, dikirim ke Midtrans
	IsActive bool    `gorm:"default:true" json:"is_active"`
}

// TopupOrder = tagihan pembelian kredit lewat Midtrans
type TopupOrder struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	OrderNo   string    `gorm:"unique;size:50" json:"order_no"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	PackageID uint      `json:"package_id"`
	Credits   int64     `json:"credits"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"` // PENDING_PAYMENT, PAID, CANCELLED
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Package CreditPackage `gorm:"foreignKey:PackageID" json:"package"`
}
