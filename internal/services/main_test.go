package services_test

import (
	"testing"

	"fotoshare-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB bikin database sqlite di memory buat testing.
// Koneksi dibatasi SATU: selain memang wajib buat :memory: (tiap koneksi
// baru = database baru), ini juga bikin transaksi yang jalan barengan
// antri beneran, jadi test konkurensi ledger-nya bermakna.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.Album{},
		&models.Photo{},
		&models.AlbumShare{},
		&models.AlbumShareInteraction{},
		&models.ClientSelection{},
		&models.OTPCode{},
		&models.OTPWindow{},
	))

	return db
}
