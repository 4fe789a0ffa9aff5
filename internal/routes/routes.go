package routes

import (
	"fotoshare-backend/internal/handlers"
	"fotoshare-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	// Grouping API dengan Versi (v1)
	api := r.Group("/api/v1")
	{
		// Grouping Auth
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/otp/send", handlers.SendOTP)
			auth.POST("/otp/verify", handlers.VerifyOTP)
		}

		// Route publik (Bisa diakses tanpa login biar orang bisa liat harga dulu)
		api.GET("/packages", handlers.GetCreditPackages)
		api.POST("/payment/notification", handlers.HandleMidtransNotification)

		// HALAMAN SHARE PUBLIK (modal token di URL, tanpa login)
		share := api.Group("/share/:token")
		{
			share.GET("", handlers.OpenShare)
			share.POST("/verify-password", handlers.VerifySharePassword)
			share.POST("/identity", handlers.SubmitShareIdentity)
			share.POST("/selection/submit", handlers.SubmitSelection)

			photo := share.Group("/photos/:photoId")
			{
				photo.POST("/view", handlers.ViewPhoto)
				photo.POST("/favorite", handlers.FavoritePhoto)
				photo.POST("/select", handlers.SelectPhoto)
				photo.POST("/unselect", handlers.UnselectPhoto)
				photo.POST("/comment", handlers.CommentPhoto)
				photo.GET("/download", handlers.DownloadPhoto)
			}
		}

		// 2. PROTECTED ROUTES (Harus Login / Punya Token)
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware()) // <--- PASANG SATPAM DISINI
		{
			// Semua route di dalam kurung kurawal ini otomatis terjaga
			protected.GET("/profile", handlers.GetUserProfile)

			// MODULE WALLET
			protected.GET("/wallet", handlers.GetMyWallet)
			protected.POST("/wallet/topup", handlers.TopupCredits)

			// Group Khusus Fotografer
			photographer := protected.Group("/")
			photographer.Use(middleware.RequireRole(middleware.RolePhotographer))
			{
				// MODULE ALBUM
				photographer.POST("/albums", handlers.CreateAlbum)
				photographer.GET("/albums", handlers.GetMyAlbums)
				photographer.GET("/albums/:id", handlers.GetAlbumDetail)
				photographer.POST("/albums/:id/photos", handlers.AddPhoto)
				photographer.DELETE("/albums/:id", handlers.DeleteAlbum)

				// MODULE SHARE
				photographer.POST("/albums/:id/shares", handlers.CreateShare)
				photographer.GET("/shares", handlers.GetMyShares)
				photographer.GET("/shares/:id/interactions", handlers.GetShareInteractions)
				photographer.DELETE("/shares/:id", handlers.DeactivateShare)
			}

			// Group Khusus Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				admin.GET("/dashboard", handlers.GetDashboardStats)
				admin.GET("/photographers", handlers.GetAllPhotographers)
				admin.GET("/transactions", handlers.GetAllTransactions)
			}
		}

	}
}
