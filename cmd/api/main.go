package main

import (
	"log"
	"os"

	"fotoshare-backend/internal/config"
	"fotoshare-backend/internal/middleware"
	"fotoshare-backend/internal/routes"
	"fotoshare-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Connect DB
	config.ConnectDB()

	// Init Firebase (FCM + Storage buat signed URL foto)
	utils.InitFirebase()

	// 3. Init Router
	r := gin.Default()

	// 4. Pasang Middleware Global
	r.Use(middleware.CORSMiddleware())

	// 5. Setup Routes
	routes.SetupRoutes(r)

	// 6. Test Ping
	r.GET("/ping", func(c *gin.Context) {
		utils.APIResponse(c, 200, true, "Server OK!", nil)
	})

	// 7. Run Server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server berjalan di port " + port)
	r.Run(":" + port)
}
