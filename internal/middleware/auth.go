package middleware

import (
	"net/http"
	"strings"

	"fotoshare-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Daftar role. Closed set: cuma tiga ini, jangan bandingin role pakai
// string/angka mentah di handler, lewat HasRoleAccess aja.
const (
	RoleAdmin        uint = 1
	RolePhotographer uint = 2
	RoleClient       uint = 3
)

// HasRoleAccess cek apakah role boleh masuk. Admin selalu boleh.
func HasRoleAccess(role uint, allowed ...uint) bool {
	if role == RoleAdmin {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Ambil Header Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Token tidak ditemukan", nil)
			c.Abort()
			return
		}

		// 2. Format harus "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Format token salah", nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 3. Validasi Token
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Token tidak valid", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Gagal memproses token", nil)
			c.Abort()
			return
		}

		// AMAN: JWT Parse number as float64 -> Convert -> Save to Context
		var userID uint64
		if val, ok := claims["user_id"].(float64); ok {
			userID = uint64(val)
		}

		var roleID uint
		if val, ok := claims["role_id"].(float64); ok {
			roleID = uint(val)
		}

		c.Set("userID", userID)
		c.Set("roleID", roleID) // Disimpan sebagai UINT

		c.Next()
	}
}

// RequireRole gantiin middleware AdminOnly/FinanceOnly dkk yang dulu
// copy-paste satu per role. Sekarang satu middleware, daftar role-nya
// dikasih dari routes.
func RequireRole(allowed ...uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, exists := c.Get("roleID")
		if !exists {
			utils.APIResponse(c, http.StatusForbidden, false, "Akses Ditolak", nil)
			c.Abort()
			return
		}

		// Di AuthMiddleware sudah disimpan sebagai UINT
		role := roleID.(uint)

		if !HasRoleAccess(role, allowed...) {
			utils.APIResponse(c, http.StatusForbidden, false, "Akses Ditolak: Role tidak sesuai", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
