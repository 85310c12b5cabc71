package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/utkutarhan/zest-backend/internal/service"
)

// AdminHandler serves the dashboard views. Everything here sits behind
// RequireAdmin.
type AdminHandler struct {
	admin  *service.AdminService
	usage  *service.UsageService
	logger *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin *service.AdminService, usage *service.UsageService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, usage: usage, logger: logger}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(RequireAdmin(h.admin, h.logger))
	{
		admin.GET("/stats", h.Stats)
		admin.GET("/users", h.Users)
		admin.POST("/users/:id/reset", h.ResetUsage)
	}
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to fetch stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Users lists the most recently active users.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context(), 100)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// ResetUsage zeroes a user's daily counter.
func (h *AdminHandler) ResetUsage(c *gin.Context) {
	err := h.usage.ResetUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("failed to reset usage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
