package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"campus-maintenance-server/config"
	"campus-maintenance-server/database"
	"campus-maintenance-server/middleware"
	"campus-maintenance-server/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config.Load()

	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := seedLocations(); err != nil {
		log.Fatal("Failed to seed location directory:", err)
	}
	if err := seedAdminUser(); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.RedirectTrailingSlash = false

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Campus Maintenance Server is running",
			"time":    time.Now().UTC(),
		})
	})

	api := router.Group("/api/v1")
	{
		authRoutes := api.Group("/auth")
		routes.RegisterAuthRoutes(authRoutes)

		// Request creation accepts anonymous submissions, so it sits behind
		// the optional variant of the auth middleware.
		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware())

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())

		routes.RegisterAuthProtectedRoutes(protected.Group("/auth"))
		routes.RegisterRequestRoutes(public, protected)
		routes.RegisterScheduleRoutes(protected)
		routes.RegisterNotificationRoutes(protected)
		routes.RegisterLocationRoutes(api)
		routes.RegisterMediaRoutes(protected)
		routes.RegisterAdminRoutes(protected)
	}

	port := config.AppConfig.Server.Port

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func allowedOrigins() []string {
	if value := os.Getenv("CORS_ALLOWED_ORIGINS"); value != "" {
		return strings.Split(value, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}
