package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"fotoshare-backend/internal/config"
	"fotoshare-backend/internal/models"
	"fotoshare-backend/internal/services"
	"fotoshare-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ==========================================
// BAGIAN FOTOGRAFER (harus login)
// ==========================================

// CreateShare bikin link share baru untuk satu album
func CreateShare(c *gin.Context) {
	userID, _ := c.Get("userID")
	albumID := c.Param("id")

	var input models.CreateShareInput
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

	// 2. Kalau dikasih password, simpan hash-nya doang
	var passwordHash string
	if input.Password != "" {
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal memproses password", nil)
			return
		}
		passwordHash = hash
	}

	// Izin favorite & comment default nyala kalau gak dikirim
	allowFavorite := true
	if input.AllowFavorite != nil {
		allowFavorite = *input.AllowFavorite
	}
	allowComment := true
	if input.AllowComment != nil {
		allowComment = *input.AllowComment
	}

	// 3. Token akses: random UUID tanpa strip biar enak ditaruh di URL
	share := models.AlbumShare{
		AlbumID:        album.ID,
		PhotographerID: album.PhotographerID,
		RecipientName:  input.RecipientName,
		RecipientEmail: input.RecipientEmail,
		ShareMethod:    input.ShareMethod,
		AccessToken:    strings.ReplaceAll(uuid.NewString(), "-", ""),
		PasswordHash:   passwordHash,
		ExpiresAt:      input.ExpiresAt,
		AllowView:      true,
		AllowDownload:  input.AllowDownload,
		AllowFavorite:  allowFavorite,
		AllowComment:   allowComment,
		IsActive:       true,
	}

	if err := config.DB.Create(&share).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal membuat share", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Share Berhasil Dibuat!", share)
}

// GetMyShares daftar semua share milik fotografer + statistik view
func GetMyShares(c *gin.Context) {
	userID, _ := c.Get("userID")

	var shares []models.AlbumShare
	config.DB.
		Preload("Album").
		Where("photographer_id = ?", userID).
		Order("created_at desc").
		Find(&shares)

	utils.APIResponse(c, http.StatusOK, true, "Daftar Share", shares)
}

// GetShareInteractions riwayat aktivitas client di satu share
// (siapa buka, foto apa yang difavorit, komentarnya apa, dll)
func GetShareInteractions(c *gin.Context) {
	userID, _ := c.Get("userID")
	shareID := c.Param("id")

	var share models.AlbumShare
	if err := config.DB.Where("id = ? AND photographer_id = ?", shareID, userID).First(&share).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Share tidak ditemukan", nil)
		return
	}

	var interactions []models.AlbumShareInteraction
	config.DB.
		Where("share_id = ?", share.ID).
		Order("created_at desc").
		Limit(200).
		Find(&interactions)

	utils.APIResponse(c, http.StatusOK, true, "Riwayat Interaksi", interactions)
}

// DeactivateShare matiin link share. Datanya gak dihapus, cuma is_active=false
// biar riwayat interaksinya tetap bisa dilihat.
func DeactivateShare(c *gin.Context) {
	userID, _ := c.Get("userID")
	shareID := c.Param("id")

	var share models.AlbumShare
	if err := config.DB.Where("id = ? AND photographer_id = ?", shareID, userID).First(&share).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Share tidak ditemukan", nil)
		return
	}

	config.DB.Model(&share).Update("is_active", false)

	utils.APIResponse(c, http.StatusOK, true, "Share Dinonaktifkan", nil)
}

// ==========================================
// BAGIAN CLIENT (publik, modal token doang)
// ==========================================

// Capability dikirim client lewat header ini setelah lolos password
const shareCapabilityHeader = "X-Share-Capability"

// shareErrorResponse nerjemahin error gerbang share jadi response yang
// jelas buat frontend. Not found, expired, dan butuh-password HARUS beda
// biar halamannya bener, tapi detail internal jangan ikut bocor.
func shareErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrShareNotFound):
		utils.APIResponse(c, http.StatusNotFound, false, "Link tidak valid atau sudah dinonaktifkan", nil)
	case errors.Is(err, services.ErrShareExpired):
		utils.APIResponse(c, http.StatusGone, false, "Link sudah kadaluarsa", nil)
	case errors.Is(err, services.ErrPasswordRequired):
		utils.APIResponse(c, http.StatusUnauthorized, false, "Album ini dikunci password", gin.H{
			"password_required": true,
		})
	case errors.Is(err, services.ErrInvalidPassword):
		utils.APIResponse(c, http.StatusUnauthorized, false, "Password salah", gin.H{
			"password_required": true,
		})
	default:
		utils.APIResponse(c, http.StatusInternalServerError, false, "Terjadi kesalahan", nil)
	}
}

// authorizeShareRequest helper: ambil token dari URL + capability dari header
func authorizeShareRequest(c *gin.Context) (*models.AlbumShare, error) {
	return services.AuthorizeView(config.DB, c.Param("token"), c.GetHeader(shareCapabilityHeader))
}

// recordInteraction nyatat aktivitas client. Fire-and-forget: kalau gagal
// cuma di-log, flow utamanya jalan terus.
func recordInteraction(c *gin.Context, share *models.AlbumShare, eventType, clientName, clientEmail string, photoID *uint64, comment string, metadata json.RawMessage) {
	interaction := models.AlbumShareInteraction{
		ShareID:        share.ID,
		AlbumID:        share.AlbumID,
		PhotographerID: share.PhotographerID,
		ClientName:     clientName,
		ClientEmail:    clientEmail,
		EventType:      eventType,
		PhotoID:        photoID,
		Comment:        comment,
		Metadata:       metadata,
		IPAddress:      c.ClientIP(),
		UserAgent:      c.Request.UserAgent(),
	}
	if err := config.DB.Create(&interaction).Error; err != nil {
		log.Printf("Gagal mencatat interaksi %s untuk share %d: %v", eventType, share.ID, err)
	}
}

// OpenShare = halaman utama share. Cek akses, catat view, balikin isi album.
func OpenShare(c *gin.Context) {
	share, err := authorizeShareRequest(c)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	// Catat view. Sengaja nambah terus tiap dibuka (bukan unique visitor).
	if err := services.RecordView(config.DB, share); err != nil {
		log.Printf("Gagal mencatat view share %d: %v", share.ID, err)
	}
	recordInteraction(c, share, models.InteractionAlbumOpen, "", "", nil, "", nil)

	// Ambil isi album
	var album models.Album
	if err := config.DB.Preload("Photos").First(&album, share.AlbumID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Album tidak ditemukan", nil)
		return
	}

	// Link tampil per foto, dibuat saat diminta (15 menit)
	photos := make([]gin.H, 0, len(album.Photos))
	for _, p := range album.Photos {
		url, err := utils.GenerateDownloadURL(p.ObjectPath)
		if err != nil {
			log.Printf("Gagal bikin URL foto %d: %v", p.ID, err)
		}
		photos = append(photos, gin.H{
			"id":        p.ID,
			"file_name": p.FileName,
			"mime_type": p.MimeType,
			"url":       url,
		})
	}

	utils.APIResponse(c, http.StatusOK, true, "Album Dibuka", gin.H{
		"album": gin.H{
			"title":       album.Title,
			"description": album.Description,
			"event_date":  album.EventDate,
		},
		"photos": photos,
		"permissions": gin.H{
			"allow_view":     share.AllowView,
			"allow_download": share.AllowDownload,
			"allow_favorite": share.AllowFavorite,
			"allow_comment":  share.AllowComment,
		},
	})
}

// VerifySharePassword cek password share. Bener = dapat capability 1 jam.
func VerifySharePassword(c *gin.Context) {
	// Resolve manual (bukan AuthorizeView), soalnya di titik ini client
	// memang belum punya capability
	share, err := services.ResolveShare(config.DB, c.Param("token"))
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	if !services.RequiresPassword(share) {
		utils.APIResponse(c, http.StatusOK, true, "Share ini tidak pakai password", nil)
		return
	}

	var input models.VerifySharePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	capability, err := services.VerifySharePassword(share, input.Password)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Password Benar", gin.H{
		"capability": capability,
		"expires_in": int(utils.ShareCapabilityTTL.Seconds()),
	})
}

// SubmitShareIdentity client ngenalin diri (nama/email) sebelum interaksi
func SubmitShareIdentity(c *gin.Context) {
	share, err := authorizeShareRequest(c)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	var input models.ShareIdentityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	recordInteraction(c, share, models.InteractionIdentityEntered, input.Name, input.Email, nil, "", nil)

	utils.APIResponse(c, http.StatusOK, true, "Selamat datang, "+input.Name+"!", nil)
}

// ViewPhoto catat client lagi ngeliatin foto tertentu
func ViewPhoto(c *gin.Context) {
	share, err := authorizeShareRequest(c)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	photo, ok := findSharePhoto(c, share)
	if !ok {
		return
	}

	var input models.ShareClientActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	recordInteraction(c, share, models.InteractionPhotoView, input.ClientName, "", &photo.ID, "", nil)

	utils.APIResponse(c, http.StatusOK, true, "OK", nil)
}

// FavoritePhoto toggle favorit. Sekali pencet nyala, pencet lagi mati.
// State-nya di ClientSelection, kejadiannya dicatat di interaksi
// (satu toggle = satu baris interaksi sesuai state barunya).
func FavoritePhoto(c *gin.Context) {
	share, err := authorizeShareRequest(c)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	if !share.AllowFavorite {
		utils.APIResponse(c, http.StatusForbidden, false, "Share ini tidak mengizinkan favorit", nil)
		return
	}

	photo, ok := findSharePhoto(c, share)
	if !ok {
		return
	}

	var input models.ShareClientActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	selection := upsertSelection(share.ID, photo.ID, input.ClientName)
	newState := !selection.IsFavorite
	config.DB.Model(&selection).Update("is_favorite", newState)

	event := models.InteractionPhotoFavorite
	if !newState {
		event = models.InteractionPhotoUnfavorite
	}
	recordInteraction(c, share, event, input.ClientName, "", &photo.ID, "", nil)

	utils.APIResponse(c, http.StatusOK, true, "OK", gin.H{"is_favorite": newState})
}

// SelectPhoto / UnselectPhoto: client milih foto yang mau dicetak/diedit
func SelectPhoto(c *gin.Context) {
	setPhotoSelection(c, true)
}

func UnselectPhoto(c *gin.Context) {
	setPhotoSelection(c, false)
}

func setPhotoSelection(c *gin.Context, selected bool) {
	share, err := authorizeShareRequest(c)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	photo, ok := findSharePhoto(c, share)
	if !ok {
		return
	}

	var input models.ShareClientActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	selection := upsertSelection(share.ID, photo.ID, input.ClientName)
	config.DB.Model(&selection).Update("is_selected", selected)

	event := models.InteractionPhotoSelect
	if !selected {
		event = models.InteractionPhotoUnselect
	}
	recordInteraction(c, share, event, input.ClientName, "", &photo.ID, "", nil)

	utils.APIResponse(c, http.StatusOK, true, "OK", gin.H{"is_selected": selected})
}

// CommentPhoto client ninggalin komentar di foto.
// Komentarnya disimpan sebagai baris interaksi comment_add.
func CommentPhoto(c *gin.Context) {
	share, err := authorizeShareRequest(c)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	if !share.AllowComment {
		utils.APIResponse(c, http.StatusForbidden, false, "Share ini tidak mengizinkan komentar", nil)
		return
	}

	photo, ok := findSharePhoto(c, share)
	if !ok {
		return
	}

	var input models.ShareCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	recordInteraction(c, share, models.InteractionCommentAdd, input.ClientName, "", &photo.ID, input.Comment, nil)

	utils.APIResponse(c, http.StatusCreated, true, "Komentar Terkirim", nil)
}

// DownloadPhoto kasih link download sementara (kalau diizinkan)
func DownloadPhoto(c *gin.Context) {
	share, err := authorizeShareRequest(c)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	if !share.AllowDownload {
		utils.APIResponse(c, http.StatusForbidden, false, "Share ini tidak mengizinkan download", nil)
		return
	}

	photo, ok := findSharePhoto(c, share)
	if !ok {
		return
	}

	url, err := utils.GenerateDownloadURL(photo.ObjectPath)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal membuat download URL", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Link Download", gin.H{
		"url":        url,
		"expires_in": int(utils.SignedURLTTL.Seconds()),
	})
}

// SubmitSelection client kirim pilihan finalnya ke fotografer
func SubmitSelection(c *gin.Context) {
	share, err := authorizeShareRequest(c)
	if err != nil {
		shareErrorResponse(c, err)
		return
	}

	var input models.ShareClientActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", nil)
		return
	}

	// Hitung foto yang kepilih buat dilampirkan di log & notifikasi
	var selectedCount int64
	config.DB.Model(&models.ClientSelection{}).
		Where("share_id = ? AND client_name = ? AND is_selected = ?", share.ID, input.ClientName, true).
		Count(&selectedCount)

	meta, _ := json.Marshal(gin.H{"selected_count": selectedCount})
	recordInteraction(c, share, models.InteractionSelectionSubmit, input.ClientName, "", nil, "", meta)

	// Kabarin fotografernya lewat FCM (kalau dia pasang token)
	var photographer models.User
	if err := config.DB.First(&photographer, share.PhotographerID).Error; err == nil && photographer.FCMToken != "" {
		go utils.SendNotification( // Pakai goroutine biar gak blocking
			photographer.FCMToken,
			"Klien Sudah Memilih Foto! 🎉",
			fmt.Sprintf("%s sudah mengirim %d foto pilihan.", input.ClientName, selectedCount),
			map[string]string{"share_id": fmt.Sprintf("%d", share.ID), "type": "selection_submitted"},
		)
	}

	utils.APIResponse(c, http.StatusOK, true, "Pilihan Terkirim ke Fotografer!", gin.H{
		"selected_count": selectedCount,
	})
}

// findSharePhoto ambil foto dari URL param + pastiin fotonya memang
// bagian dari album yang di-share (biar gak bisa ngintip foto album lain)
func findSharePhoto(c *gin.Context, share *models.AlbumShare) (*models.Photo, bool) {
	photoID := utils.StringToUint64(c.Param("photoId"))

	var photo models.Photo
	if err := config.DB.Where("id = ? AND album_id = ?", photoID, share.AlbumID).First(&photo).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Foto tidak ditemukan", nil)
		return nil, false
	}
	return &photo, true
}

// upsertSelection ambil/bikin baris state pilihan client untuk satu foto
func upsertSelection(shareID, photoID uint64, clientName string) models.ClientSelection {
	var selection models.ClientSelection
	err := config.DB.
		Where("share_id = ? AND photo_id = ? AND client_name = ?", shareID, photoID, clientName).
		First(&selection).Error
	if err != nil {
		selection = models.ClientSelection{
			ShareID:    shareID,
			PhotoID:    photoID,
			ClientName: clientName,
		}
		config.DB.Create(&selection)
	}
	return selection
}
