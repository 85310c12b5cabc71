package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/utkutarhan/zest-backend/internal/service"
)

// RequireAdmin gates a route group on the caller's ledger role. Identity is
// the trusted x-user-id header; verifying it against the identity provider
// happens upstream of this service.
func RequireAdmin(admin *service.AdminService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("x-user-id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		isAdmin, err := admin.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			logger.Error("admin check failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Next()
	}
}
