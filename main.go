package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"techkwiz/cache"
	"techkwiz/config"
	"techkwiz/handlers"
	"techkwiz/middleware"
	"techkwiz/models"
	"techkwiz/routes"
	"techkwiz/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.AdminUser{},
		&models.QuizCategory{},
		&models.QuizQuestion{},
		&models.RewardedPopupConfig{},
		&models.ScriptInjection{},
		&models.AdSlot{},
		&models.AdAnalyticsEvent{},
		&models.SiteConfig{},
		&models.StatusCheck{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize cache (Redis when reachable, memory otherwise)
	var appCache *cache.Cache
	if cfg.CacheEnabled {
		appCache = cache.New(config.InitRedis(cfg))
	} else {
		appCache = cache.NewMemory()
	}

	// Initialize services
	mailer := services.NewEmailService(cfg)
	authService := services.NewAuthService(db, mailer, cfg.JWTSecret, cfg.AccessTokenExpires, cfg.BcryptCost, cfg.AdminEmail)
	categoryService := services.NewCategoryService(db, appCache)
	questionService := services.NewQuestionService(db, appCache)
	rewardedService := services.NewRewardedConfigService(db)
	contentService := services.NewContentService(db)
	analyticsService := services.NewAnalyticsService(db)
	backupService := services.NewBackupService(db, appCache)
	siteConfigService := services.NewSiteConfigService(db)
	statusService := services.NewStatusService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	contentHandler := handlers.NewContentHandler(contentService)
	rewardedHandler := handlers.NewRewardedConfigHandler(rewardedService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	backupHandler := handlers.NewBackupHandler(backupService)
	siteConfigHandler := handlers.NewSiteConfigHandler(siteConfigService)
	statusHandler := handlers.NewStatusHandler(statusService)
	quizHandler := handlers.NewQuizHandler(categoryService, questionService, rewardedService, contentService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(
		router,
		authHandler,
		categoryHandler,
		questionHandler,
		contentHandler,
		rewardedHandler,
		analyticsHandler,
		backupHandler,
		siteConfigHandler,
		statusHandler,
		quizHandler,
		cfg.JWTSecret,
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.BindAddress + ":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
