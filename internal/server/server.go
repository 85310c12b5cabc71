package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/utkutarhan/zest-backend/config"
	"github.com/utkutarhan/zest-backend/internal/api"
	"github.com/utkutarhan/zest-backend/internal/middleware"
	"github.com/utkutarhan/zest-backend/internal/router"
	"github.com/utkutarhan/zest-backend/internal/service"
)

// Server represents the HTTP server.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New wires services, handlers and routes into a runnable server.
// redisClient may be nil; the detail cache and rate limiter then fall back
// to in-process behavior.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *Server {
	var cache service.DetailCache
	if redisClient != nil {
		cache = service.NewRedisDetailCache(redisClient, logger)
	} else {
		cache = service.NewMemoryDetailCache()
	}

	usageService := service.NewUsageService(db, cfg.DailyLimit, cfg.IsAdminEmail, logger)
	llmService := service.NewLLMService(cfg.ProviderAPIKey, cfg.ProviderAPIURL, cfg.ProviderModel, cache, logger)
	adminService := service.NewAdminService(db)

	userHandler := api.NewUserHandler(usageService, logger)
	recipeHandler := api.NewRecipeHandler(usageService, llmService, logger)
	adminHandler := api.NewAdminHandler(adminService, usageService, logger)
	healthHandler := api.NewHealthHandler(db, redisClient)

	var apiMiddleware []gin.HandlerFunc
	if redisClient != nil {
		limiter := middleware.NewAPIRateLimiter(redisClient)
		apiMiddleware = append(apiMiddleware, limiter.Middleware())
	}

	engine := router.SetupRouter(userHandler, recipeHandler, adminHandler, healthHandler, apiMiddleware...)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
			Handler: engine,
		},
		logger: logger,
	}
}

// Start begins serving. It blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
