package handlers

import (
	"net/http"

	"fotoshare-backend/internal/config"
	"fotoshare-backend/internal/middleware"
	"fotoshare-backend/internal/models"
	"fotoshare-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats menampilkan ringkasan performa bisnis
func GetDashboardStats(c *gin.Context) {
	var photographers int64
	var totalAlbums int64
	var activeShares int64

	// 1. Total kredit terjual (dari transaksi pembelian di ledger)
	type Result struct {
		Total int64
	}
	var creditsSold Result
	config.DB.Table("wallet_transactions").
		Where("category = ? AND status = ?", models.TransactionCategoryCreditPurchase, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0) as total"). // Pakai COALESCE biar kalau null jadi 0
		Scan(&creditsSold)

	// 2. Pendapatan kotor rupiah dari topup yang kebayar
	var revenue struct {
		Total float64
	}
	config.DB.Table("topup_orders").
		Where("status = ?", "PAID").
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&revenue)

	// 3. Jumlah fotografer, album, dan share aktif
	config.DB.Model(&models.User{}).Where("role_id = ?", middleware.RolePhotographer).Count(&photographers)
	config.DB.Model(&models.Album{}).Count(&totalAlbums)
	config.DB.Model(&models.AlbumShare{}).Where("is_active = ?", true).Count(&activeShares)

	// 4. Total view semua album
	var totalViews Result
	config.DB.Table("albums").
		Select("COALESCE(SUM(view_count), 0) as total").
		Scan(&totalViews)

	utils.APIResponse(c, http.StatusOK, true, "Data Dashboard Admin", gin.H{
		"credits_sold":        creditsSold.Total,
		"gross_revenue":       revenue.Total,
		"photographers_count": photographers,
		"albums_count":        totalAlbums,
		"active_shares_count": activeShares,
		"total_album_views":   totalViews.Total,
	})
}

// GetAllPhotographers melihat daftar semua fotografer
func GetAllPhotographers(c *gin.Context) {
	var photographers []models.User

	// Preload Albums biar admin tau fotografer ini punya album apa aja
	config.DB.
		Preload("Albums").
		Where("role_id = ?", middleware.RolePhotographer).
		Find(&photographers)

	utils.APIResponse(c, http.StatusOK, true, "Data Semua Fotografer", photographers)
}

// GetAllTransactions melihat semua transaksi ledger di sistem
func GetAllTransactions(c *gin.Context) {
	// Filter kategori (Opsional) ?category=credit_purchase
	category := c.Query("category")

	var transactions []models.WalletTransaction
	query := config.DB.Order("created_at desc").Limit(200)

	if category != "" {
		query = query.Where("category = ?", category)
	}

	query.Find(&transactions)

	utils.APIResponse(c, http.StatusOK, true, "Data Semua Transaksi", transactions)
}
