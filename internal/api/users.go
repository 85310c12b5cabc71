package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/utkutarhan/zest-backend/internal/service"
)

// UserHandler handles identity sync and usage queries.
type UserHandler struct {
	usage  *service.UsageService
	logger *zap.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(usage *service.UsageService, logger *zap.Logger) *UserHandler {
	return &UserHandler{usage: usage, logger: logger}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/sync", h.Sync)
		users.GET("/:id/usage", h.Usage)
		users.GET("/:id/history", h.History)
	}
}

// Sync upserts the ledger row for an identity-provider user. Called by the
// frontend after every login.
func (h *UserHandler) Sync(c *gin.Context) {
	var req struct {
		ID    string `json:"id" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user ID or invalid email"})
		return
	}

	if err := h.usage.SyncUser(c.Request.Context(), req.ID, req.Email); err != nil {
		h.logger.Error("failed to sync user", zap.String("user_id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Usage reports the effective daily usage for a user. Unknown users have the
// full quota; this endpoint never writes.
func (h *UserHandler) Usage(c *gin.Context) {
	usage, err := h.usage.GetEffectiveUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to fetch usage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, usage)
}

// History returns the user's recent fulfilled generations, newest first.
func (h *UserHandler) History(c *gin.Context) {
	records, err := h.usage.History(c.Request.Context(), c.Param("id"), 50)
	if err != nil {
		h.logger.Error("failed to fetch history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, records)
}
