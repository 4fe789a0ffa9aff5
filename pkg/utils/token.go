package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ShareCapabilityTTL = umur token buka-password share. Lewat dari ini,
// client harus masukin password lagi.
const ShareCapabilityTTL = time.Hour

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "rahasia_dapur_fotoshare" // Fallback kalau .env lupa diisi
	}
	return []byte(secret)
}

// GenerateToken membuat JWT string yang berisi User ID dan Role
func GenerateToken(userID uint64, roleID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role_id": roleID,
		"exp":     time.Now().Add(time.Hour * 24).Unix(), // Token berlaku 24 jam
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateToken memverifikasi apakah token valid atau tidak
func ValidateToken(encodedToken string) (*jwt.Token, error) {
	return jwt.Parse(encodedToken, func(token *jwt.Token) (interface{}, error) {
		// Validasi algoritma enkripsi (harus HMAC)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
}

// ShareCapability = isi token "sudah lolos password" untuk satu share tertentu
type ShareCapability struct {
	ShareToken string
	ShareID    uint64
	AlbumID    uint64
}

// GenerateShareCapability bikin token berumur 1 jam setelah client
// berhasil masukin password share. Scope-nya KETAT ke satu share token.
func GenerateShareCapability(shareToken string, shareID, albumID uint64) (string, error) {
	claims := jwt.MapClaims{
		"share_token": shareToken,
		"share_id":    shareID,
		"album_id":    albumID,
		"exp":         time.Now().Add(ShareCapabilityTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateShareCapability parse + verifikasi token capability.
// Expired atau signature salah = error (jwt/v5 otomatis cek exp).
func ValidateShareCapability(encoded string) (*ShareCapability, error) {
	token, err := jwt.Parse(encoded, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("capability tidak valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("capability tidak valid")
	}

	capability := &ShareCapability{}
	if val, ok := claims["share_token"].(string); ok {
		capability.ShareToken = val
	}
	// JWT parse angka sebagai float64, convert balik
	if val, ok := claims["share_id"].(float64); ok {
		capability.ShareID = uint64(val)
	}
	if val, ok := claims["album_id"].(float64); ok {
		capability.AlbumID = uint64(val)
	}

	if capability.ShareToken == "" {
		return nil, errors.New("capability tidak valid")
	}
	return capability, nil
}
