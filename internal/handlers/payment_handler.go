package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"fotoshare-backend/internal/config"
	"fotoshare-backend/internal/models"
	"fotoshare-backend/internal/services"
	"fotoshare-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Struct sederhana untuk menangkap body notifikasi Midtrans
// Midtrans mengirim JSON banyak field, tapi kita cuma butuh ini dulu
type MidtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	OrderID           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
}

func HandleMidtransNotification(c *gin.Context) {
	var notification MidtransNotification

	// 1. Decode JSON dari Midtrans
	if err := c.ShouldBindJSON(&notification); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid JSON", nil)
		return
	}

	// 2. Tentukan Status Order Internal berdasarkan Status Midtrans
	var orderStatus string

	switch notification.TransactionStatus {
	case "capture":
		if notification.FraudStatus == "challenge" {
			orderStatus = "PENDING_PAYMENT" // Masih diverifikasi bank
		} else if notification.FraudStatus == "accept" {
			orderStatus = "PAID" // Sukses CC
		}
	case "settlement":
		orderStatus = "PAID" // Sukses Transfer Bank/Gopay
	case "deny", "cancel", "expire":
		orderStatus = "CANCELLED" // Gagal
	case "pending":
		orderStatus = "PENDING_PAYMENT"
	default:
		orderStatus = "PENDING_PAYMENT"
	}

	// 3. Log webhook received
	log.Printf("[Webhook] Midtrans notification received - OrderID: %s, TransactionStatus: %s, FraudStatus: %s, MappedStatus: %s",
		notification.OrderID, notification.TransactionStatus, notification.FraudStatus, orderStatus)

	// 4. Cari order topup berdasarkan Order No (Midtrans kirim TOPUP-xxx)
	var order models.TopupOrder
	if err := config.DB.Where("order_no = ?", notification.OrderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Webhook] Order not found: %s", notification.OrderID)
			utils.APIResponse(c, http.StatusNotFound, false, "Order Not Found", nil)
			return
		}
		log.Printf("[Webhook] DB error fetching order: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Database error", err.Error())
		return
	}

	// 5. Midtrans suka kirim notifikasi yang sama berkali-kali.
	// Kalau order sudah PAID, jangan nambah kredit dua kali!
	if order.Status == "PAID" {
		log.Printf("[Webhook] Order %s sudah PAID, notifikasi di-skip", order.OrderNo)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if order.Status != orderStatus {
		log.Printf("[Webhook] Updating order %s status from %s to %s", order.OrderNo, order.Status, orderStatus)
		if err := config.DB.Model(&order).Update("status", orderStatus).Error; err != nil {
			log.Printf("[Webhook] DB error updating order: %v", err)
			utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update order", err.Error())
			return
		}
	}

	// 6. PEMBAYARAN SUKSES -> masukkan kredit ke dompet lewat ledger
	if orderStatus == "PAID" {
		meta, _ := json.Marshal(gin.H{"order_no": order.OrderNo, "package_id": order.PackageID})
		_, _, err := services.AddCredits(config.DB, order.UserID, order.Credits,
			models.TransactionCategoryCreditPurchase,
			fmt.Sprintf("Top up %d kredit (order %s)", order.Credits, order.OrderNo),
			meta)
		if err != nil {
			// Status order sudah PAID tapi kredit gagal masuk.
			// Balikin ke PENDING biar notifikasi Midtrans berikutnya dicoba lagi.
			log.Printf("[Webhook] GAWAT: gagal menambah kredit order %s: %v", order.OrderNo, err)
			config.DB.Model(&order).Update("status", "PENDING_PAYMENT")
			utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to credit wallet", nil)
			return
		}

		// Kabarin user pembayarannya sukses
		var user models.User
		if err := config.DB.First(&user, order.UserID).Error; err == nil && user.FCMToken != "" {
			go utils.SendNotification(
				user.FCMToken,
				"Pembayaran Berhasil! ✅",
				fmt.Sprintf("%d kredit sudah masuk ke dompet Anda.", order.Credits),
				map[string]string{"order_no": order.OrderNo, "type": "topup_success"},
			)
		}
	} else if orderStatus == "CANCELLED" {
		// Pembayaran gagal/expired, kabarin juga
		var user models.User
		if err := config.DB.First(&user, order.UserID).Error; err == nil && user.FCMToken != "" {
			go utils.SendNotification(
				user.FCMToken,
				"Pembayaran Gagal/Expired ❌",
				"Maaf, top up Anda dibatalkan karena pembayaran gagal atau waktu habis.",
				map[string]string{"order_no": order.OrderNo, "type": "topup_cancelled"},
			)
		}
	}

	// 7. Response OK ke Midtrans (Wajib biar Midtrans tau kita udah terima)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
