package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/utkutarhan/zest-backend/internal/api"
)

// SetupRouter configures the application routes. extraMiddleware is applied
// to the /api group (the Redis rate limiter when Redis is configured).
func SetupRouter(
	userHandler *api.UserHandler,
	recipeHandler *api.RecipeHandler,
	adminHandler *api.AdminHandler,
	healthHandler *api.HealthHandler,
	extraMiddleware ...gin.HandlerFunc,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "Accept", "Origin", "x-user-id"},
		MaxAge:          24 * time.Hour,
	}))

	router.GET("/health", healthHandler.Check)

	apiGroup := router.Group("/api")
	apiGroup.Use(extraMiddleware...)
	{
		userHandler.RegisterRoutes(apiGroup)
		recipeHandler.RegisterRoutes(apiGroup)
		adminHandler.RegisterRoutes(apiGroup)
	}

	return router
}
