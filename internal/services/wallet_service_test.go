package services_test

import (
	"errors"
	"sync"
	"testing"

	"fotoshare-backend/internal/models"
	"fotoshare-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWallet(t *testing.T) {
	t.Run("wallet baru tanpa bonus", func(t *testing.T) {
		db := setupTestDB(t)

		wallet, err := services.CreateWallet(db, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), wallet.Balance)
		assert.True(t, wallet.IsActive)

		// Saldo 0 = gak ada transaksi yang perlu dicatat
		history, total, err := services.GetTransactionHistory(db, 1, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, history)
		assert.Equal(t, int64(0), total)
	})

	t.Run("wallet dengan bonus pendaftaran", func(t *testing.T) {
		db := setupTestDB(t)

		wallet, err := services.CreateWallet(db, 1, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(300), wallet.Balance)
		assert.Equal(t, int64(300), services.GetBalance(db, 1))

		// Bonusnya harus kecatat sebagai transaksi signup_bonus dari saldo 0
		history, total, err := services.GetTransactionHistory(db, 1, 10, 0)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, models.TransactionCategorySignupBonus, history[0].Category)
		assert.Equal(t, models.TransactionDirectionCredit, history[0].Direction)
		assert.Equal(t, int64(0), history[0].BalanceBefore)
		assert.Equal(t, int64(300), history[0].BalanceAfter)
		assert.Equal(t, models.TransactionStatusCompleted, history[0].Status)
	})

	t.Run("satu user gak boleh punya dua wallet", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := services.CreateWallet(db, 1, 0)
		require.NoError(t, err)

		_, err = services.CreateWallet(db, 1, 100)
		assert.ErrorIs(t, err, services.ErrDuplicateWallet)
	})

	t.Run("saldo awal minus ditolak", func(t *testing.T) {
		db := setupTestDB(t)

		_, err := services.CreateWallet(db, 1, -10)
		assert.ErrorIs(t, err, services.ErrInvalidAmount)
	})
}

// Skenario lengkap sesuai alur produk: daftar dapat bonus, bikin album
// kena potongan, history-nya urut terbaru dulu.
func TestWalletEndToEnd(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.CreateWallet(db, 1, 300)
	require.NoError(t, err)
	assert.Equal(t, int64(300), services.GetBalance(db, 1))

	wallet, trx, err := services.DeductCredits(db, 1, 10, models.TransactionCategoryAlbumCreation, "Pembuatan album: Wedding A&B", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(290), wallet.Balance)
	assert.Equal(t, int64(300), trx.BalanceBefore)
	assert.Equal(t, int64(290), trx.BalanceAfter)

	history, total, err := services.GetTransactionHistory(db, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(2), total)

	// Terbaru dulu: potongan album di atas, bonus daftar di bawah
	assert.Equal(t, models.TransactionCategoryAlbumCreation, history[0].Category)
	assert.Equal(t, models.TransactionCategorySignupBonus, history[1].Category)
}

func TestAddAndDeductCredits(t *testing.T) {
	t.Run("saldo akhir = awal + kredit - debit", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := services.CreateWallet(db, 1, 100)
		require.NoError(t, err)

		_, _, err = services.AddCredits(db, 1, 50, models.TransactionCategoryCreditPurchase, "Top up", nil)
		require.NoError(t, err)
		_, _, err = services.DeductCredits(db, 1, 30, models.TransactionCategoryAlbumCreation, "Album", nil)
		require.NoError(t, err)
		_, _, err = services.DeductCredits(db, 1, 20, models.TransactionCategoryAlbumCreation, "Album lagi", nil)
		require.NoError(t, err)

		assert.Equal(t, int64(100), services.GetBalance(db, 1)) // 100+50-30-20
	})

	t.Run("rantai transaksi nyambung", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := services.CreateWallet(db, 1, 100)
		require.NoError(t, err)

		services.AddCredits(db, 1, 25, models.TransactionCategoryCreditPurchase, "", nil)
		services.DeductCredits(db, 1, 40, models.TransactionCategoryAlbumCreation, "", nil)
		services.AddCredits(db, 1, 5, models.TransactionCategoryRefund, "", nil)

		history, _, err := services.GetTransactionHistory(db, 1, 100, 0)
		require.NoError(t, err)
		require.Len(t, history, 4)

		// Setiap transaksi: balance_after - balance_before = ±amount
		// dan balance_before-nya sama dengan balance_after transaksi sebelumnya
		for i, trx := range history {
			if trx.Direction == models.TransactionDirectionCredit {
				assert.Equal(t, trx.BalanceBefore+trx.Amount, trx.BalanceAfter)
			} else {
				assert.Equal(t, trx.BalanceBefore-trx.Amount, trx.BalanceAfter)
			}
			assert.Positive(t, trx.Amount)

			if i < len(history)-1 { // history urut terbaru dulu
				assert.Equal(t, history[i+1].BalanceAfter, trx.BalanceBefore)
			}
		}
	})

	t.Run("amount nol atau minus ditolak", func(t *testing.T) {
		db := setupTestDB(t)
		services.CreateWallet(db, 1, 100)

		_, _, err := services.AddCredits(db, 1, 0, models.TransactionCategoryCreditPurchase, "", nil)
		assert.ErrorIs(t, err, services.ErrInvalidAmount)
		_, _, err = services.DeductCredits(db, 1, -5, models.TransactionCategoryAlbumCreation, "", nil)
		assert.ErrorIs(t, err, services.ErrInvalidAmount)
	})

	t.Run("user tanpa wallet", func(t *testing.T) {
		db := setupTestDB(t)

		_, _, err := services.AddCredits(db, 99, 10, models.TransactionCategoryCreditPurchase, "", nil)
		assert.ErrorIs(t, err, services.ErrWalletNotFound)
		_, _, err = services.DeductCredits(db, 99, 10, models.TransactionCategoryAlbumCreation, "", nil)
		assert.ErrorIs(t, err, services.ErrWalletNotFound)
	})

	t.Run("wallet nonaktif dianggap gak ada", func(t *testing.T) {
		db := setupTestDB(t)
		wallet, err := services.CreateWallet(db, 1, 100)
		require.NoError(t, err)

		db.Model(wallet).Update("is_active", false)

		_, _, err = services.DeductCredits(db, 1, 10, models.TransactionCategoryAlbumCreation, "", nil)
		assert.ErrorIs(t, err, services.ErrWalletNotFound)
	})
}

func TestDeductInsufficient(t *testing.T) {
	db := setupTestDB(t)
	_, err := services.CreateWallet(db, 1, 50)
	require.NoError(t, err)

	_, _, err = services.DeductCredits(db, 1, 100, models.TransactionCategoryAlbumCreation, "", nil)
	assert.ErrorIs(t, err, services.ErrInsufficientCredits)

	// Gagal = bener-bener gak ada efek samping:
	// saldo tetap dan gak ada transaksi nyelip
	assert.Equal(t, int64(50), services.GetBalance(db, 1))
	history, total, err := services.GetTransactionHistory(db, 1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1) // Cuma signup_bonus
	assert.Equal(t, int64(1), total)
}

// Dua request barengan nguras saldo yang sama: harus TEPAT satu yang
// berhasil, satunya kena ErrInsufficientCredits, saldo akhir 0 bukan minus.
func TestConcurrentDeductDrain(t *testing.T) {
	db := setupTestDB(t)
	_, err := services.CreateWallet(db, 1, 100)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, _, results[idx] = services.DeductCredits(db, 1, 100, models.TransactionCategoryAlbumCreation, "", nil)
		}(i)
	}
	wg.Wait()

	var success, insufficient int
	for _, err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, services.ErrInsufficientCredits):
			insufficient++
		default:
			t.Fatalf("error tak terduga: %v", err)
		}
	}

	assert.Equal(t, 1, success)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(0), services.GetBalance(db, 1))

	// Cuma satu debit yang kecatat
	history, _, err := services.GetTransactionHistory(db, 1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2) // signup_bonus + satu debit
}

func TestGetBalanceAndSufficiency(t *testing.T) {
	db := setupTestDB(t)

	// Gak punya wallet = saldo 0, bukan error
	assert.Equal(t, int64(0), services.GetBalance(db, 42))
	assert.False(t, services.HasSufficientCredits(db, 42, 1))
	assert.True(t, services.HasSufficientCredits(db, 42, 0))

	services.CreateWallet(db, 42, 75)
	assert.True(t, services.HasSufficientCredits(db, 42, 75))
	assert.False(t, services.HasSufficientCredits(db, 42, 76))
}

func TestTransactionHistoryPagination(t *testing.T) {
	db := setupTestDB(t)
	_, err := services.CreateWallet(db, 1, 10)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, _, err := services.AddCredits(db, 1, int64(i+1), models.TransactionCategoryCreditPurchase, "", nil)
		require.NoError(t, err)
	}

	page1, total, err := services.GetTransactionHistory(db, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total) // bonus + 5 topup
	require.Len(t, page1, 2)

	page2, _, err := services.GetTransactionHistory(db, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	// Terbaru dulu: halaman pertama isinya topup terakhir (amount 5 lalu 4)
	assert.Equal(t, int64(5), page1[0].Amount)
	assert.Equal(t, int64(4), page1[1].Amount)
	assert.Equal(t, int64(3), page2[0].Amount)
}
