package handlers

import (
	"errors"
	"log"
	"net/http"

	"fotoshare-backend/internal/config"
	"fotoshare-backend/internal/models"
	"fotoshare-backend/internal/services"
	"fotoshare-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Bonus kredit buat user baru, cukup buat nyobain bikin beberapa album
const WelcomeBonusCredits = 300

// REGISTER
func Register(c *gin.Context) {
	var input models.RegisterInput

	// 1. Validasi Input JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	// 2. Hash Password
	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal memproses password", nil)
		return
	}

	// 3. Siapkan Data User
	user := models.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		RoleID:       input.RoleID,
		Phone:        input.Phone,
		StudioName:   input.StudioName,
		IsVerified:   false, // Default belum verifikasi email
	}

	// 4. Simpan ke Database
	if err := config.DB.Create(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Email atau Nomor HP sudah terdaftar!", nil)
		return
	}

	// 5. Buatkan dompet + bonus kredit selamat datang.
	// Kalau gagal jangan batalin registrasinya, cukup dicatat di log,
	// wallet bakal dibuatin lagi pas user buka halaman dompet.
	if _, err := services.CreateWallet(config.DB, user.ID, WelcomeBonusCredits); err != nil {
		log.Printf("Gagal membuat wallet untuk user %d: %v", user.ID, err)
	}

	// 6. Sukses
	utils.APIResponse(c, http.StatusCreated, true, "Registrasi Berhasil! Silakan Login.", user)
}

// LOGIN
func Login(c *gin.Context) {
	var input models.LoginInput

	// 1. Validasi Input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	// 2. Cari User berdasarkan Email
	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Email atau Password salah", nil)
		return
	}

	// 3. Cek Password
	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Email atau Password salah", nil)
		return
	}

	// Jika frontend mengirim token FCM, simpan ke database
	if input.FCMToken != "" {
		// Kita hanya update kolom fcm_token agar efisien
		config.DB.Model(&user).Update("fcm_token", input.FCMToken)
	}

	// 4. Generate JWT Token
	token, err := utils.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal generate token", nil)
		return
	}

	// 5. Sukses & Kirim Token
	utils.APIResponse(c, http.StatusOK, true, "Login Berhasil", gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"full_name":   user.FullName,
			"role_id":     user.RoleID,
			"email":       user.Email,
			"studio_name": user.StudioName,
		},
	})
}

// SendOTP kirim kode verifikasi ke email/HP user
func SendOTP(c *gin.Context) {
	var input models.SendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	otp, err := services.SendOTP(config.DB, input.Identifier, input.Purpose)
	if err != nil {
		if errors.Is(err, services.ErrOTPRateLimited) {
			utils.APIResponse(c, http.StatusTooManyRequests, false, "Terlalu sering minta OTP. Tunggu beberapa menit ya.", nil)
			return
		}
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal membuat OTP", nil)
		return
	}

	// TODO: kirim kode lewat email/SMS provider. Sekarang masih log doang
	// karena providernya belum ditentukan.
	log.Printf("OTP untuk %s (%s): %s", input.Identifier, input.Purpose, otp.Code)

	utils.APIResponse(c, http.StatusOK, true, "Kode OTP sudah dikirim", gin.H{
		"expires_at": otp.ExpiresAt,
	})
}

// VerifyOTP cek kode yang diinput user
func VerifyOTP(c *gin.Context) {
	var input models.VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	if err := services.VerifyOTP(config.DB, input.Identifier, input.Purpose, input.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrOTPExpired):
			utils.APIResponse(c, http.StatusBadRequest, false, "Kode OTP sudah kadaluarsa. Minta kode baru ya.", nil)
		case errors.Is(err, services.ErrOTPTooManyAttempts):
			utils.APIResponse(c, http.StatusTooManyRequests, false, "Terlalu banyak percobaan. Minta kode baru ya.", nil)
		case errors.Is(err, services.ErrOTPInvalid):
			utils.APIResponse(c, http.StatusBadRequest, false, "Kode OTP salah", nil)
		default:
			utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal verifikasi OTP", nil)
		}
		return
	}

	// Verifikasi email sukses -> tandai user verified
	if input.Purpose == "verify_email" {
		config.DB.Model(&models.User{}).Where("email = ?", input.Identifier).Update("is_verified", true)
	}

	utils.APIResponse(c, http.StatusOK, true, "Verifikasi Berhasil", nil)
}

// GetUserProfile mengambil data user yang sedang login
func GetUserProfile(c *gin.Context) {
	// 1. Ambil User ID dari Context (Hasil kerja Middleware tadi)
	userID, exists := c.Get("userID")
	if !exists {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Unauthorized", nil)
		return
	}

	// 2. Cari di Database
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User tidak ditemukan", nil)
		return
	}

	// 3. Return Data (Tanpa Password), sekalian saldo kredit
	utils.APIResponse(c, http.StatusOK, true, "Data Profile Berhasil Diambil", gin.H{
		"id":          user.ID,
		"full_name":   user.FullName,
		"email":       user.Email,
		"phone":       user.Phone,
		"role_id":     user.RoleID,
		"studio_name": user.StudioName,
		"is_verified": user.IsVerified,
		"balance":     services.GetBalance(config.DB, user.ID),
	})
}
