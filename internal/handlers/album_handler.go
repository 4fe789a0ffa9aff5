package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"fotoshare-backend/internal/config"
	"fotoshare-backend/internal/models"
	"fotoshare-backend/internal/services"
	"fotoshare-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Bikin album = bayar segini kredit
const AlbumCreationCost = 10

// CreateAlbum membuat album baru. Dipotong kredit dulu, baru albumnya dibuat.
func CreateAlbum(c *gin.Context) {
	userID, _ := c.Get("userID")
	photographerID := userID.(uint64)

	var input models.CreateAlbumInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	// 1. Potong kredit. Kalau saldo kurang, stop di sini, gak ada yang keubah.
	_, trx, err := services.DeductCredits(config.DB, photographerID, AlbumCreationCost,
		models.TransactionCategoryAlbumCreation,
		fmt.Sprintf("Pembuatan album: %s", input.Title), nil)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientCredits) {
			utils.APIResponse(c, http.StatusBadRequest, false, "Kredit tidak cukup! Silakan top up dulu.", gin.H{
				"balance":  services.GetBalance(config.DB, photographerID),
				"required": AlbumCreationCost,
			})
			return
		}
		if errors.Is(err, services.ErrWalletNotFound) {
			utils.APIResponse(c, http.StatusBadRequest, false, "Wallet tidak ditemukan", nil)
			return
		}
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal memotong kredit", nil)
		return
	}

	// 2. Simpan Album
	album := models.Album{
		PhotographerID: photographerID,
		Title:          input.Title,
		Description:    input.Description,
		EventDate:      input.EventDate,
	}

	if err := config.DB.Create(&album).Error; err != nil {
		// Album gagal dibuat padahal kredit sudah kepotong -> balikin kreditnya
		if _, _, refundErr := services.AddCredits(config.DB, photographerID, AlbumCreationCost,
			models.TransactionCategoryRefund, "Refund: album gagal dibuat", trx.Metadata); refundErr != nil {
			log.Printf("GAWAT: refund gagal untuk user %d: %v", photographerID, refundErr)
		}
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal membuat album", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Album Berhasil Dibuat!", gin.H{
		"album":   album,
		"balance": services.GetBalance(config.DB, photographerID),
	})
}

// GetMyAlbums daftar album milik fotografer yang login
func GetMyAlbums(c *gin.Context) {
	userID, _ := c.Get("userID")

	var albums []models.Album
	config.DB.
		Where("photographer_id = ?", userID).
		Order("created_at desc").
		Find(&albums)

	utils.APIResponse(c, http.StatusOK, true, "Daftar Album", albums)
}

// GetAlbumDetail detail album + daftar foto (punya sendiri doang)
func GetAlbumDetail(c *gin.Context) {
	userID, _ := c.Get("userID")
	albumID := c.Param("id")

	var album models.Album
	err := config.DB.
		Preload("Photos").
		Where("id = ? AND photographer_id = ?", albumID, userID).
		First(&album).Error
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Album tidak ditemukan", nil)
		return
	}

	// Kasih link download sementara per foto, dibuat saat diminta
	photos := make([]gin.H, 0, len(album.Photos))
	for _, p := range album.Photos {
		url, err := utils.GenerateDownloadURL(p.ObjectPath)
		if err != nil {
			log.Printf("Gagal bikin download URL foto %d: %v", p.ID, err)
		}
		photos = append(photos, gin.H{
			"id":         p.ID,
			"file_name":  p.FileName,
			"mime_type":  p.MimeType,
			"size_bytes": p.SizeBytes,
			"url":        url,
		})
	}

	utils.APIResponse(c, http.StatusOK, true, "Detail Album", gin.H{
		"album":  album,
		"photos": photos,
	})
}

// AddPhoto daftarin foto baru ke album, balikannya link upload sementara.
// Frontend upload byte-nya langsung ke bucket pakai link itu (PUT).
func AddPhoto(c *gin.Context) {
	userID, _ := c.Get("userID")
	albumID := c.Param("id")

	var input models.AddPhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	// 1. Pastikan albumnya punya dia
	var album models.Album
	if err := config.DB.Where("id = ? AND photographer_id = ?", albumID, userID).First(&album).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Album tidak ditemukan", nil)
		return
	}

	// 2. Simpan metadata foto. Path objek pakai timestamp biar gak tabrakan.
	objectPath := fmt.Sprintf("albums/%d/%d_%s", album.ID, time.Now().UnixNano(), input.FileName)
	photo := models.Photo{
		AlbumID:    album.ID,
		FileName:   input.FileName,
		ObjectPath: objectPath,
		MimeType:   input.MimeType,
		SizeBytes:  input.SizeBytes,
	}

	if err := config.DB.Create(&photo).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal menyimpan foto", nil)
		return
	}

	// 3. Bikin link upload sementara (15 menit)
	uploadURL, err := utils.GenerateUploadURL(objectPath, input.MimeType)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal membuat upload URL", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Silakan upload foto ke URL berikut", gin.H{
		"photo_id":   photo.ID,
		"upload_url": uploadURL,
		"expires_in": int(utils.SignedURLTTL.Seconds()),
	})
}

// DeleteAlbum soft delete album (datanya masih ada di DB, cuma disembunyikan)
func DeleteAlbum(c *gin.Context) {
	userID, _ := c.Get("userID")
	albumID := c.Param("id")

	var album models.Album
	if err := config.DB.Where("id = ? AND photographer_id = ?", albumID, userID).First(&album).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Album tidak ditemukan", nil)
		return
	}

	// Matikan juga semua share-nya biar link lama gak bisa dibuka
	config.DB.Model(&models.AlbumShare{}).Where("album_id = ?", album.ID).Update("is_active", false)
	config.DB.Delete(&album)

	utils.APIResponse(c, http.StatusOK, true, "Album Dihapus", nil)
}
