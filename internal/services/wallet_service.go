package services

import (
	"encoding/json"
	"errors"

	"fotoshare-backend/internal/models"

	"gorm.io/gorm"
)

// Error-error dompet. Handler yang nentuin jadi HTTP status berapa.
var (
	ErrWalletNotFound      = errors.New("wallet tidak ditemukan")
	ErrDuplicateWallet     = errors.New("wallet sudah ada untuk user ini")
	ErrInsufficientCredits = errors.New("kredit tidak cukup")
	ErrInvalidAmount       = errors.New("amount harus lebih dari 0")
	ErrWalletBusy          = errors.New("wallet sedang sibuk, coba lagi")
)

// Sinyal internal: saldo keburu berubah di tengah jalan, ulangi transaksinya
var errBalanceConflict = errors.New("balance berubah, ulangi")

// Berapa kali mutasi saldo diulang kalau kalah rebutan sama request lain
const balanceRetries = 3

// CreateWallet bikin dompet baru untuk user. Satu user cuma boleh punya satu
// (dijaga unique index di kolom user_id). Kalau initialBalance > 0, sekalian
// dicatat sebagai transaksi signup_bonus biar history-nya dari awal lengkap.
func CreateWallet(db *gorm.DB, userID uint64, initialBalance int64) (*models.Wallet, error) {
	if initialBalance < 0 {
		return nil, ErrInvalidAmount
	}

	wallet := models.Wallet{
		UserID:   userID,
		Balance:  initialBalance,
		Currency: "credits",
		IsActive: true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&wallet).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateWallet
			}
			return err
		}

		// Bonus selamat datang dicatat sebagai transaksi pertama
		if initialBalance > 0 {
			trx := models.WalletTransaction{
				UserID:        userID,
				WalletID:      wallet.ID,
				Direction:     models.TransactionDirectionCredit,
				Amount:        initialBalance,
				BalanceBefore: 0,
				BalanceAfter:  initialBalance,
				Category:      models.TransactionCategorySignupBonus,
				Description:   "Bonus kredit pendaftaran",
				Status:        models.TransactionStatusCompleted,
			}
			if err := tx.Create(&trx).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// AddCredits menambah saldo + mencatat transaksi dalam SATU transaksi DB.
// Dua-duanya sukses atau dua-duanya batal, gak boleh setengah-setengah.
func AddCredits(db *gorm.DB, userID uint64, amount int64, category, description string, metadata json.RawMessage) (*models.Wallet, *models.WalletTransaction, error) {
	return mutateBalance(db, userID, amount, models.TransactionDirectionCredit, category, description, metadata)
}

// DeductCredits mengurangi saldo. Kalau hasilnya bakal minus, SELURUH operasi
// dibatalkan: saldo gak berubah dan gak ada transaksi yang tercatat.
func DeductCredits(db *gorm.DB, userID uint64, amount int64, category, description string, metadata json.RawMessage) (*models.Wallet, *models.WalletTransaction, error) {
	return mutateBalance(db, userID, amount, models.TransactionDirectionDebit, category, description, metadata)
}

// mutateBalance = inti ledger. Update saldonya pakai compare-and-swap:
// "ubah saldo jadi X CUMA KALAU saldonya masih Y seperti yang kita baca".
// Dua request barengan gak mungkin dua-duanya lolos dari saldo lama yang
// sama: yang kalah gak kena baris apa pun, terus diulang dari awal dan
// ngeliat saldo baru. Semua di dalam satu transaksi DB, jadi saldo dan
// catatan history-nya selalu berubah bareng atau gak sama sekali.
func mutateBalance(db *gorm.DB, userID uint64, amount int64, direction, category, description string, metadata json.RawMessage) (*models.Wallet, *models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	// Retry harus di level transaksi (bukan di dalamnya): kalau di dalam,
	// isolasi repeatable-read bikin kita baca snapshot saldo lama terus.
	for i := 0; i < balanceRetries; i++ {
		wallet, trx, err := tryMutateBalance(db, userID, amount, direction, category, description, metadata)
		if errors.Is(err, errBalanceConflict) {
			continue
		}
		return wallet, trx, err
	}
	return nil, nil, ErrWalletBusy
}

func tryMutateBalance(db *gorm.DB, userID uint64, amount int64, direction, category, description string, metadata json.RawMessage) (*models.Wallet, *models.WalletTransaction, error) {
	var wallet models.Wallet
	var trx models.WalletTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		// 1. Baca saldo sekarang
		err := tx.Where("user_id = ? AND is_active = ?", userID, true).
			First(&wallet).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}

		// 2. Hitung saldo baru
		balanceBefore := wallet.Balance
		var balanceAfter int64
		if direction == models.TransactionDirectionCredit {
			balanceAfter = balanceBefore + amount
		} else {
			balanceAfter = balanceBefore - amount
			if balanceAfter < 0 {
				return ErrInsufficientCredits // Batal total, gak ada yang keubah
			}
		}

		// 3. Simpan saldo baru, TAPI cuma kalau saldonya belum berubah
		// sejak kita baca di langkah 1 (compare-and-swap)
		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND balance = ?", wallet.ID, balanceBefore).
			Update("balance", balanceAfter)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errBalanceConflict // Keduluan request lain, ulangi
		}
		wallet.Balance = balanceAfter

		// 4. Catat di history, lengkap dengan snapshot saldo
		trx = models.WalletTransaction{
			UserID:        userID,
			WalletID:      wallet.ID,
			Direction:     direction,
			Amount:        amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceAfter,
			Category:      category,
			Description:   description,
			Metadata:      metadata,
			Status:        models.TransactionStatusCompleted,
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &wallet, &trx, nil
}

// GetBalance balikin saldo sekarang. User belum punya wallet? Ya 0.
// Fungsi ini gak pernah error, paling jelek balikin 0.
func GetBalance(db *gorm.DB, userID uint64) int64 {
	var wallet models.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return 0
	}
	return wallet.Balance
}

// HasSufficientCredits cek saldo cukup gak untuk amount tertentu
func HasSufficientCredits(db *gorm.DB, userID uint64, amount int64) bool {
	return GetBalance(db, userID) >= amount
}

// GetTransactionHistory ambil history transaksi terbaru dulu, plus total
// buat pagination di frontend
func GetTransactionHistory(db *gorm.DB, userID uint64, limit, skip int) ([]models.WalletTransaction, int64, error) {
	if limit <= 0 {
		limit = 20
	}

	var total int64
	if err := db.Model(&models.WalletTransaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.WalletTransaction
	err := db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(skip).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}
