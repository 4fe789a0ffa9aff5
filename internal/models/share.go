package models

import (
	"encoding/json"
	"time"
)

// AlbumShare adalah link berbagi album. Token-nya unik global,
// bisa dikasih password (hash bcrypt) dan tanggal kadaluarsa.
type AlbumShare struct {
	ID             uint64 `gorm:"primaryKey" json:"id"`
	AlbumID        uint64 `gorm:"index;not null" json:"album_id"`
	PhotographerID uint64 `gorm:"index;not null" json:"photographer_id"`

	// Penerima share (buat share via email / user langsung)
	RecipientName  string  `gorm:"size:100" json:"recipient_name"`
	RecipientEmail string  `gorm:"size:100" json:"recipient_email"`
	SharedUserID   *uint64 `json:"shared_user_id"` // Pointer karena bisa NULL (share anonim via link)

	ShareMethod  string `gorm:"size:10;not null" json:"share_method"`    // link / email / direct
	AccessToken  string `gorm:"uniqueIndex;size:64" json:"access_token"` // Token opak di URL share
	PasswordHash string `gorm:"size:100" json:"-"`                       // Kosong = share tanpa password

	ExpiresAt *time.Time `json:"expires_at"`

	// Izin apa aja yang dikasih ke penerima
	AllowView     bool `gorm:"default:true" json:"allow_view"`
	AllowDownload bool `gorm:"default:false" json:"allow_download"`
	AllowFavorite bool `gorm:"default:true" json:"allow_favorite"`
	AllowComment  bool `gorm:"default:true" json:"allow_comment"`

	ViewCount    int64      `gorm:"default:0" json:"view_count"`
	LastViewedAt *time.Time `json:"last_viewed_at"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Album *Album `gorm:"foreignKey:AlbumID" json:"album,omitempty"`
}

// Metode share
const (
	ShareMethodLink   = "link"
	ShareMethodEmail  = "email"
	ShareMethodDirect = "direct"
)

// AlbumShareInteraction = log aktivitas client di halaman share.
// Append-only: dibuat terus, gak pernah diupdate/dihapus.
type AlbumShareInteraction struct {
	ID             uint64          `gorm:"primaryKey" json:"id"`
	ShareID        uint64          `gorm:"index;not null" json:"share_id"`
	AlbumID        uint64          `gorm:"index;not null" json:"album_id"`
	PhotographerID uint64          `gorm:"index;not null" json:"photographer_id"`
	ClientName     string          `gorm:"size:100" json:"client_name"`
	ClientEmail    string          `gorm:"size:100" json:"client_email"`
	EventType      string          `gorm:"size:30;not null" json:"event_type"`
	PhotoID        *uint64         `json:"photo_id"`
	Comment        string          `gorm:"type:text" json:"comment"`
	Metadata       json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	IPAddress      string          `gorm:"size:45" json:"ip_address"`
	UserAgent      string          `gorm:"size:255" json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Jenis event interaksi (closed set, jangan nambah sembarangan)
const (
	InteractionIdentityEntered = "identity_entered"
	InteractionAlbumOpen       = "album_open"
	InteractionPhotoView       = "photo_view"
	InteractionPhotoSelect     = "photo_select"
	InteractionPhotoUnselect   = "photo_unselect"
	InteractionPhotoFavorite   = "photo_favorite"
	InteractionPhotoUnfavorite = "photo_unfavorite"
	InteractionCommentAdd      = "comment_add"
	InteractionSelectionSubmit = "selection_submit"
)

// ClientSelection nyimpen state pilihan/favorit client per foto per share.
// Log kejadiannya tetap masuk AlbumShareInteraction, ini cuma state terakhirnya.
type ClientSelection struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	ShareID    uint64    `gorm:"index:idx_selection,unique;not null" json:"share_id"`
	PhotoID    uint64    `gorm:"index:idx_selection,unique;not null" json:"photo_id"`
	ClientName string    `gorm:"index:idx_selection,unique;size:100;not null" json:"client_name"`
	IsFavorite bool      `gorm:"default:false" json:"is_favorite"`
	IsSelected bool      `gorm:"default:false" json:"is_selected"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Input bikin share baru (dari fotografer)
type CreateShareInput struct {
	ShareMethod    string     `json:"share_method" binding:"required,oneof=link email direct"`
	RecipientName  string     `json:"recipient_name"`
	RecipientEmail string     `json:"recipient_email" binding:"omitempty,email"`
	Password       string     `json:"password" binding:"omitempty,min=4"`
	ExpiresAt      *time.Time `json:"expires_at"`
	AllowDownload  bool       `json:"allow_download"`
	AllowFavorite  *bool      `json:"allow_favorite"` // Pointer biar bisa bedain false vs gak dikirim
	AllowComment   *bool      `json:"allow_comment"`
}

// Input dari sisi client (halaman share publik)
type VerifySharePasswordInput struct {
	Password string `json:"password" binding:"required"`
}

type ShareIdentityInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

type ShareCommentInput struct {
	Comment    string `json:"comment" binding:"required,max=2000"`
	ClientName string `json:"client_name" binding:"required"`
}

type ShareClientActionInput struct {
	ClientName string `json:"client_name" binding:"required"`
}
