package main

import (
	"os"
	"time"

	"vocabpool/internal/api"
	"vocabpool/internal/config"
	"vocabpool/internal/database"
	"vocabpool/internal/logging"
	"vocabpool/internal/models"
	"vocabpool/internal/redis"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var log = logging.Named("server")

// @title Vocabpool API
// @version 1.0
// @description Spaced-repetition vocabulary learning: Learn/Practice/Review sessions, placement, and a tutor chat.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	logging.Init(logging.Options{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redis.Connect(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	// Start background token cleanup
	userRepo := database.NewUserRepository(db)
	go startTokenCleanup(userRepo)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	// Configure Gin to handle trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Add panic-recovery middleware (CORS is added in api.SetupRoutes)
	router.Use(gin.Recovery())

	// Initialize API routes
	api.SetupRoutes(router, db, redisClient, cfg)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "vocabpool-api",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server starting")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// startTokenCleanup runs periodic cleanup of expired tokens and sessions.
// Runs every hour to delete expired email verification tokens,
// password reset tokens, and user sessions.
func startTokenCleanup(repo models.UserRepository) {
	time.Sleep(10 * time.Second)
	if err := repo.CleanupExpiredTokens(); err != nil {
		log.Warn().Err(err).Msg("initial token cleanup failed")
	} else {
		log.Info().Msg("initial expired token cleanup completed")
	}

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := repo.CleanupExpiredTokens(); err != nil {
			log.Warn().Err(err).Msg("token cleanup failed")
		} else {
			log.Info().Msg("expired token cleanup completed")
		}
	}
}
