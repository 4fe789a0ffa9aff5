package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"fotoshare-backend/internal/config"
	"fotoshare-backend/internal/models"
	"fotoshare-backend/internal/services"
	"fotoshare-backend/pkg/utils"

	"github.com/gin-gonic/gin"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// GetMyWallet menampilkan saldo saat ini & riwayat transaksi (paginated)
func GetMyWallet(c *gin.Context) {
	userID, _ := c.Get("userID")
	uid := userID.(uint64)

	// Pagination: ?limit=20&skip=0
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	// User lama yang belum punya wallet (misal register sebelum fitur ini ada)
	// dibuatkan wallet kosong di sini
	balance := int64(0)
	var wallet models.Wallet
	if err := config.DB.Where("user_id = ?", uid).First(&wallet).Error; err != nil {
		created, err := services.CreateWallet(config.DB, uid, 0)
		if err != nil {
			utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal menyiapkan wallet", nil)
			return
		}
		wallet = *created
	}
	balance = wallet.Balance

	transactions, total, err := services.GetTransactionHistory(config.DB, uid, limit, skip)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil riwayat transaksi", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Dompet Saya", gin.H{
		"balance":      balance,
		"currency":     wallet.Currency,
		"transactions": transactions,
		"total":        total,
		"limit":        limit,
		"skip":         skip,
	})
}

// GetCreditPackages daftar paket kredit yang bisa dibeli
// (Bisa diakses publik biar orang bisa liat harga dulu)
func GetCreditPackages(c *gin.Context) {
	var packages []models.CreditPackage
	config.DB.Where("is_active = ?", true).Order("credits asc").Find(&packages)

	utils.APIResponse(c, http.StatusOK, true, "Daftar Paket Kredit", packages)
}

// TopupCredits beli paket kredit lewat Midtrans.
// Kreditnya BELUM masuk di sini, nunggu webhook pembayaran sukses.
func TopupCredits(c *gin.Context) {
	userID, _ := c.Get("userID")
	uid := userID.(uint64)

	var input struct {
		PackageID uint `json:"package_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input salah", err.Error())
		return
	}

	// Ambil data user lengkap (Nama & Email) untuk dikirim ke Midtrans
	var user models.User
	config.DB.First(&user, uid)

	// 1. Cek Paket & Ambil Harga
	var pkg models.CreditPackage
	if err := config.DB.Where("id = ? AND is_active = ?", input.PackageID, true).First(&pkg).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Paket tidak ditemukan", nil)
		return
	}

	orderNo := fmt.Sprintf("TOPUP-%d-%d", uid, time.Now().Unix())

	// 2. Simpan Order ke DB (Status PENDING)
	order := models.TopupOrder{
		OrderNo:   orderNo,
		UserID:    uid,
		PackageID: pkg.ID,
		Credits:   pkg.Credits,
		Amount:    pkg.Price,
		Status:    "PENDING_PAYMENT",
	}
	if err := config.DB.Create(&order).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal menyimpan order", err.Error())
		return
	}

	// 3. INTEGRASI MIDTRANS SNAP
	// A. Init Client Midtrans
	var s = snap.Client{}
	s.New(os.Getenv("MIDTRANS_SERVER_KEY"), midtrans.Sandbox)

	// B. Siapkan Request Snap
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderNo,
			GrossAmt: int64(pkg.Price), // Midtrans minta int64
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
			Phone: user.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    fmt.Sprintf("PKG-%d", pkg.ID),
				Name:  pkg.Name,
				Price: int64(pkg.Price),
				Qty:   1,
			},
		},
	}

	// C. Minta Token ke Midtrans
	snapResp, errSnap := s.CreateTransaction(req)
	if errSnap != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Midtrans Error", errSnap.GetMessage())
		return
	}

	log.Printf("[Topup] Order %s dibuat untuk user %d (%d kredit)", orderNo, uid, pkg.Credits)

	// 4. Return Response dengan Token
	utils.APIResponse(c, http.StatusCreated, true, "Order Berhasil! Silakan Bayar.", gin.H{
		"order_id":     order.ID,
		"order_no":     order.OrderNo,
		"credits":      order.Credits,
		"amount":       order.Amount,
		"snap_token":   snapResp.Token,       // <--- INI YG DIPAKAI FRONTEND
		"redirect_url": snapResp.RedirectURL, // <--- Link pembayaran web
	})
}
