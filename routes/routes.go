package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techkwiz/handlers"
	"techkwiz/middleware"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	categoryHandler *handlers.CategoryHandler,
	questionHandler *handlers.QuestionHandler,
	contentHandler *handlers.ContentHandler,
	rewardedHandler *handlers.RewardedConfigHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	backupHandler *handlers.BackupHandler,
	siteConfigHandler *handlers.SiteConfigHandler,
	statusHandler *handlers.StatusHandler,
	quizHandler *handlers.QuizHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "TechKwiz API is running"})
		})
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "TechKwiz API is running"})
		})

		api.POST("/status", statusHandler.Create)
		api.GET("/status", statusHandler.List)

		// Admin auth routes (public)
		admin := api.Group("/admin")
		{
			admin.POST("/setup", authHandler.Setup)
			admin.POST("/login", authHandler.Login)
			admin.GET("/verify", authHandler.Verify)
			admin.POST("/forgot-password", authHandler.ForgotPassword)
			admin.POST("/reset-password", authHandler.ResetPassword)
		}

		// Protected admin routes
		protected := api.Group("/admin")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.PUT("/profile", authHandler.UpdateProfile)

			categories := protected.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", categoryHandler.Create)
				categories.GET("/:id", categoryHandler.Get)
				categories.PUT("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}

			questions := protected.Group("/questions")
			{
				questions.GET("", questionHandler.List)
				questions.POST("", questionHandler.Create)
				questions.GET("/:id", questionHandler.Get)
				questions.PUT("/:id", questionHandler.Update)
				questions.DELETE("/:id", questionHandler.Delete)
			}

			scripts := protected.Group("/scripts")
			{
				scripts.GET("", contentHandler.ListScripts)
				scripts.POST("", contentHandler.CreateScript)
				scripts.PUT("/:id", contentHandler.UpdateScript)
				scripts.DELETE("/:id", contentHandler.DeleteScript)
			}

			adSlots := protected.Group("/ad-slots")
			{
				adSlots.GET("", contentHandler.ListAdSlots)
				adSlots.POST("", contentHandler.CreateAdSlot)
				adSlots.PUT("/:id", contentHandler.UpdateAdSlot)
				adSlots.DELETE("/:id", contentHandler.DeleteAdSlot)
			}

			rewarded := protected.Group("/rewarded-config")
			{
				rewarded.GET("", rewardedHandler.List)
				rewarded.GET("/:scope", rewardedHandler.Get)
				rewarded.PUT("/:scope", rewardedHandler.Put)
			}

			protected.GET("/site-config", siteConfigHandler.Get)
			protected.PUT("/site-config", siteConfigHandler.Put)

			protected.GET("/export/quiz-data", backupHandler.Export)
			protected.POST("/import/quiz-data", backupHandler.Import)

			protected.GET("/ad-analytics", analyticsHandler.Summary)
			protected.GET("/ad-analytics/export", analyticsHandler.ExportCSV)
		}

		// Public quiz routes
		quiz := api.Group("/quiz")
		{
			quiz.GET("/categories", quizHandler.ListCategories)
			quiz.GET("/categories/:id", quizHandler.GetCategory)
			quiz.GET("/categories/:id/timer-config", quizHandler.GetTimerConfig)
			quiz.GET("/questions/:category_id", quizHandler.GetQuestions)
			quiz.GET("/sequential-questions/:category_id", quizHandler.GetSequentialQuestions)
			quiz.GET("/question/:question_id", quizHandler.GetQuestion)
			quiz.GET("/rewarded-config", quizHandler.GetHomepageRewardedConfig)
			quiz.GET("/rewarded-config/:category_id", quizHandler.GetCategoryRewardedConfig)
			quiz.GET("/scripts/:placement", quizHandler.GetScriptsForPlacement)
			quiz.GET("/ad-slots/:placement", quizHandler.GetAdSlotsForPlacement)
			quiz.GET("/between-questions-ads", quizHandler.GetBetweenQuestionsAds)
			quiz.POST("/ad-analytics/event", analyticsHandler.RecordEvent)
		}
	}

	// Site text files served from configuration
	router.GET("/ads.txt", siteConfigHandler.AdsTxt)
	router.GET("/robots.txt", siteConfigHandler.RobotsTxt)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
