package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword mengubah password biasa menjadi kode acak
// Dipakai buat password akun DAN password link share
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword membandingkan password inputan dengan hash di database
// bcrypt compare-nya constant time, aman dari timing attack
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
