package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/kolo-pohody/backend/internal/middleware"
	"github.com/kolo-pohody/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Kolo Pohody API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes wires every handler onto the router. The generator,
// redis client and image service may be nil; the affected features degrade
// instead of failing startup.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService service.IAuthService, generator service.TextGenerator, redisClient *redis.Client, imageService service.IImageService) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	wellnessService := service.NewWellnessService(db)
	journalService := service.NewJournalService(db)
	inspirationService := service.NewInspirationService(db, generator, redisClient)

	authHandler := NewAuthHandler(authService)
	wellnessHandler := NewWellnessHandler(wellnessService)
	journalHandler := NewJournalHandler(journalService)
	inspirationHandler := NewInspirationHandler(inspirationService)
	profileHandler := NewProfileHandler(authService, imageService)

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	authHandler.RegisterRoutes(v1, protected)
	wellnessHandler.RegisterRoutes(protected)
	journalHandler.RegisterRoutes(protected)
	inspirationHandler.RegisterRoutes(protected)
	profileHandler.RegisterRoutes(protected)
}
