package app

import (
	"time"

	"edu_analytics_backend/internal/config"
	"edu_analytics_backend/internal/middleware"
	"edu_analytics_backend/internal/util"
	"edu_analytics_backend/pkg/monitoring"
	"edu_analytics_backend/pkg/security"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由，按学生限流
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret),
		security.RateLimiter(cfg.RateLimit.MaxRequests, window, middleware.StudentKey),
	)
	{
		a.registerAnalyticsRoutes(authGroup, c)
		a.registerGamificationRoutes(authGroup, c)
		a.registerQuestionRoutes(authGroup, c)
		a.registerPreferenceRoutes(authGroup, c)

		// 本地存储的归档报告
		if cfg.Storage.Type == util.StorageLocal {
			authGroup.Static("/uploads", cfg.Storage.LocalPath)
		}
	}
}

func (a *App) registerAnalyticsRoutes(group *gin.RouterGroup, c *controllers) {
	analytics := group.Group("/analytics")
	{
		analytics.GET("/progress", c.analytics.GetProgress)
		analytics.GET("/recommendations", c.analytics.GetRecommendations)
	}
}

func (a *App) registerGamificationRoutes(group *gin.RouterGroup, c *controllers) {
	gamification := group.Group("/gamification")
	{
		gamification.GET("/badges", c.gamification.GetBadges)
		gamification.GET("/achievements", c.gamification.GetAchievements)
		gamification.GET("/level", c.gamification.GetLevel)
		gamification.GET("/summary", c.gamification.GetSummary)
	}
}

func (a *App) registerQuestionRoutes(group *gin.RouterGroup, c *controllers) {
	questions := group.Group("/questions")
	{
		questions.POST("/validate", c.validation.Validate)
		questions.GET("/reports/:id", c.validation.GetReport)
	}
}

func (a *App) registerPreferenceRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/preferences", c.preference.Get)
	group.PUT("/preferences", c.preference.Update)
}
