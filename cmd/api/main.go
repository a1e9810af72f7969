package main

import (
	"context"
	"log"
	"os"

	"orbit-api/config"
	"orbit-api/controllers"
	"orbit-api/middleware"
	"orbit-api/monitor"
	"orbit-api/routes"
	"orbit-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// Initialize blob storage
	blobs, err := storage.Open(context.Background())
	if err != nil {
		log.Fatal("Failed to open blob storage:", err)
	}
	controllers.Blobs = blobs

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	// When the local blob driver is active, serve the uploads dir directly.
	if local, ok := blobs.(*storage.LocalStore); ok {
		router.Static("/uploads", local.Root())
	}

	monitor.RegisterMonitorRoute(router)

	// Log tail, guarded by a token. Register before SetupRoutes so the
	// catch-all 404 does not shadow it.
	router.GET("/logs", func(c *gin.Context) {
		token := os.Getenv("LOG_ACCESS_TOKEN")
		if token == "" || c.Query("token") != token {
			c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Unable to read log"})
			return
		}

		c.Data(200, "text/plain; charset=utf-8", logData)
	})

	routes.SetupRoutes(router)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("Blob storage driver: %s", blobs.Driver())

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
