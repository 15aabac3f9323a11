package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gophertrophy/internal/app"
	"gophertrophy/internal/bootstrap"
	"gophertrophy/internal/cache"
	"gophertrophy/internal/platform/rabbitmq"
	"gophertrophy/internal/repository"
	"gophertrophy/internal/transport/http/handler"
	"gophertrophy/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	tokenRepo := repository.NewTokenRepository(app.MySQL)
	achievementRepo := repository.NewAchievementRepository(app.MySQL)
	userAchievementRepo := repository.NewUserAchievementRepository(app.MySQL)

	catalogCache := cache.NewCatalogCache(
		app.Redis,
		time.Duration(app.Config.Redis.CatalogTTLSeconds)*time.Second,
	)
	unlockPublisher := rabbitmq.NewUnlockPublisher(app.MQConn, app.Config.RabbitMQ.UnlockAuditQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		tokenRepo,
		app.Config.Auth.BcryptCost,
		app.Config.Auth.TokenLength,
	)
	achievementService := appsvc.NewAchievementService(
		achievementRepo,
		userAchievementRepo,
		unlockPublisher,
		catalogCache,
	)
	authHandler := handler.NewAuthHandler(authService)
	achievementHandler := handler.NewAchievementHandler(achievementService)

	v1 := router.Group("/api/v1")

	userGroup := v1.Group("/users")
	userGroup.POST("", authHandler.Register)
	userGroup.POST("/auth", authHandler.Login)

	achievementGroup := v1.Group("/achievements")
	achievementGroup.GET("", achievementHandler.List)
	achievementGroup.GET("/individual/:id", achievementHandler.GetByID)
	achievementGroup.POST("", middleware.RequireAuth(authService, appsvc.LevelAdmin), achievementHandler.Register)
	achievementGroup.PUT("/unlock/:id", middleware.RequireAuth(authService, appsvc.LevelUser), achievementHandler.Unlock)
	achievementGroup.GET("/unlocked", middleware.RequireAuth(authService, appsvc.LevelUser), achievementHandler.ListUnlocked)

	return router
}
