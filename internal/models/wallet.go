package models

import (
	"encoding/json"
	"time"
)

// Wallet menyimpan saldo kredit per user. Satu user = satu wallet (unique user_id).
// Saldo TIDAK BOLEH minus, dan setiap perubahan saldo WAJIB punya satu baris
// WalletTransaction yang mencatat saldo sebelum & sesudah.
type Wallet struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   int64     `gorm:"default:0;not null" json:"balance"` // Kredit dalam satuan bulat, bukan rupiah
	Currency  string    `gorm:"size:10;default:credits" json:"currency"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relasi ke History Transaksi
	Transactions []WalletTransaction `gorm:"foreignKey:WalletID" json:"transactions,omitempty"`
}

// WalletTransaction adalah buku catatan perubahan saldo.
// Sekali dibuat TIDAK PERNAH diubah atau dihapus (append-only).
type WalletTransaction struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	UserID        uint64          `gorm:"index;not null" json:"user_id"`
	WalletID      uint64          `gorm:"index;not null" json:"wallet_id"`
	Direction     string          `gorm:"size:10;not null" json:"direction"` // credit / debit
	Amount        int64           `gorm:"not null" json:"amount"`            // Selalu positif
	BalanceBefore int64           `gorm:"not null" json:"balance_before"`
	BalanceAfter  int64           `gorm:"not null" json:"balance_after"`
	Category      string          `gorm:"size:30;not null" json:"category"`
	Description   string          `gorm:"size:255" json:"description"`
	Metadata      json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`
	Status        string          `gorm:"size:15;default:completed" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Arah transaksi
const (
	TransactionDirectionCredit = "credit"
	TransactionDirectionDebit  = "debit"
)

// Status transaksi. Dari ledger sendiri selalu completed;
// pending/failed/cancelled disediakan buat integrasi lain.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// Kategori transaksi
const (
	TransactionCategorySignupBonus    = "signup_bonus"
	TransactionCategoryCreditPurchase = "credit_purchase"
	TransactionCategoryAlbumCreation  = "album_creation"
	TransactionCategoryRefund         = "refund"
	TransactionCategoryAdminAdjust    = "admin_adjustment"
)
