package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"fotoshare-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB adalah koneksi global, dipakai semua handler & service
var DB *gorm.DB

// ConnectDB membuka koneksi MySQL + auto migrate semua tabel
func ConnectDB() {
	// Format DSN: user:pass@tcp(host:port)/dbname
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"),
		getEnv("DB_HOST", "127.0.0.1"),
		getEnv("DB_PORT", "3306"),
		getEnv("DB_NAME", "fotoshare"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true, // Biar error duplicate key kebaca sebagai gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatal("Gagal konek database: ", err)
	}

	// Setting connection pool biar gak kehabisan koneksi pas rame
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// Auto Migrate: bikin/update tabel sesuai struct model
	err = db.AutoMigrate(
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
		&models.CreditPackage{},
		&models.TopupOrder{},
	)
	if err != nil {
		log.Fatal("Gagal migrate database: ", err)
	}

	DB = db
	log.Println("Database Connected!")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
