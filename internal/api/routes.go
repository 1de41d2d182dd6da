package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"vocabpool/internal/assembler"
	"vocabpool/internal/auth"
	"vocabpool/internal/config"
	"vocabpool/internal/database"
	"vocabpool/internal/middleware"
	"vocabpool/internal/models"
	"vocabpool/internal/placement"
	redisx "vocabpool/internal/redis"
	"vocabpool/internal/tts"
	"vocabpool/internal/tutor"
)

// SetupRoutes configures all API routes and wires every handler to its
// backing services.
func SetupRoutes(router *gin.Engine, db *sql.DB, redisClient *goredis.Client, cfg *config.Config) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "Accept", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories, cache-wrapped where it pays off.
	catalogRepo := redisx.NewCatalogCache(database.NewCatalogRepository(db), redisClient)
	progressRepo := database.NewProgressRepository(db)
	curriculumRepo := database.NewCurriculumRepository(db)
	userRepo := database.NewUserRepository(db)
	chatRepo := database.NewChatRepository(db)

	// Domain services.
	asm := assembler.New(catalogRepo, progressRepo, curriculumRepo, nil)
	placementSvc := placement.NewService(curriculumRepo)
	tutorClient := tutor.NewClient(&cfg.AI)
	tutorSvc := tutor.NewService(tutorClient, chatRepo)
	speechCache := redisx.NewSpeechCache(redisClient)
	synth := tts.New(context.Background(), cfg.Email.AWSRegion, speechCache)

	// Auth plumbing.
	userService := models.NewUserService(userRepo)
	tokenService := auth.NewTokenService(cfg)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userService)

	// Handlers.
	authHandler := NewAuthHandler(db, cfg)
	learnHandler := NewLearnHandler(asm)
	practiceHandler := NewPracticeHandler(asm)
	reviewHandler := NewReviewHandler(asm)
	homeHandler := NewHomeHandler(asm)
	placementHandler := NewPlacementHandler(placementSvc, catalogRepo)
	chatHandler := NewChatHandler(tutorSvc, chatRepo, tutorClient)
	speechHandler := NewSpeechHandler(synth)
	adminHandler := NewAdminHandler(asm)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.POST("/request-password-reset", authHandler.RequestPasswordReset)
			authGroup.POST("/confirm-password-reset", authHandler.ConfirmPasswordReset)
			authGroup.POST("/verify-email", authHandler.VerifyEmail)
		}

		// Speech synthesis doesn't require authentication: it's pure
		// pronunciation lookup with no per-user state.
		v1.POST("/speech", speechHandler.Speak)

		protected := v1.Group("/")
		protected.Use(authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("", authHandler.GetProfile)
				profile.PUT("", authHandler.UpdateProfile)
			}

			placementGroup := protected.Group("/placement")
			{
				placementGroup.GET("/quiz", placementHandler.Quiz)
				placementGroup.POST("/submit", placementHandler.Submit)
			}

			learnGroup := protected.Group("/learn")
			{
				learnGroup.GET("/start", learnHandler.Start)
				learnGroup.POST("/complete", learnHandler.Complete)
			}

			practiceGroup := protected.Group("/practice")
			{
				practiceGroup.GET("/start", practiceHandler.Start)
				practiceGroup.POST("/submit", practiceHandler.Submit)
			}

			reviewGroup := protected.Group("/review")
			{
				reviewGroup.GET("/start", reviewHandler.Start)
				reviewGroup.POST("/complete", reviewHandler.Complete)
				reviewGroup.POST("/submit", reviewHandler.Submit)
			}

			protected.GET("/home", homeHandler.Stats)

			chatGroup := protected.Group("/chat")
			{
				chatGroup.POST("/message", chatHandler.SendMessage)
				chatGroup.GET("/history", chatHandler.GetHistory)
			}

			adminGroup := protected.Group("/admin")
			{
				adminGroup.POST("/words/:id/reset", adminHandler.ResetWord)
			}
		}
	}
}

// healthCheck reports service liveness.
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vocabpool-api",
		"version": "1.0.0",
	})
}
