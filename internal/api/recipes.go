package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/utkutarhan/zest-backend/internal/models"
	"github.com/utkutarhan/zest-backend/internal/service"
	"github.com/utkutarhan/zest-backend/internal/types"
	"github.com/utkutarhan/zest-backend/pkg/locales"
)

// RecipeHandler orchestrates the generation flow: validate, reserve a quota
// slot, call the provider, commit usage, respond.
type RecipeHandler struct {
	usage  *service.UsageService
	llm    *service.LLMService
	logger *zap.Logger
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(usage *service.UsageService, llm *service.LLMService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{usage: usage, llm: llm, logger: logger}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/generate", h.Generate)
		recipes.POST("/detail", h.Detail)
	}
}

// Generate handles POST /api/recipes/generate.
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing scenario or ingredients"})
		return
	}
	if req.Scenario == "" || len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing scenario or ingredients"})
		return
	}

	userID := c.GetHeader("x-user-id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	lang := req.Language
	if lang == "" {
		lang = locales.DefaultLanguage
	}

	reservation, err := h.usage.ReserveGenerationSlot(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("quota check failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !reservation.Allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Daily generation limit reached",
			"code":    "LIMIT_REACHED",
			"message": locales.LimitReached(lang),
		})
		return
	}

	result, err := h.llm.GenerateSuggestions(c.Request.Context(), req.Scenario, req.Ingredients, req.DietaryPreferences, lang)
	if err != nil {
		if errors.Is(err, service.ErrProviderUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI Service Unavailable (Missing Key)"})
			return
		}
		h.logger.Error("generation failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe"})
		return
	}

	response := gin.H{
		"recipes": result.Recipes,
		"chefTip": result.ChefTip,
	}

	// The provider already answered, so a commit failure must not discard
	// the result. The client gets the recipes plus a warning that the
	// counter was not updated.
	if err := h.usage.CommitGeneration(c.Request.Context(), userID); err != nil {
		h.logger.Error("failed to record usage after generation",
			zap.String("user_id", userID), zap.Error(err))
		response["usageRecorded"] = false
		response["warning"] = locales.UsageNotRecorded(lang)
		c.JSON(http.StatusOK, response)
		return
	}

	record := &models.GenerationRecord{
		UserID:      userID,
		Scenario:    req.Scenario,
		Ingredients: strings.Join(req.Ingredients, ", "),
		Language:    lang,
		RecipeCount: len(result.Recipes),
	}
	if err := h.usage.RecordGeneration(c.Request.Context(), record); err != nil {
		h.logger.Warn("failed to write history entry", zap.String("user_id", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, response)
}

// Detail handles POST /api/recipes/detail.
func (h *RecipeHandler) Detail(c *gin.Context) {
	var req types.DetailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DishName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing dishName"})
		return
	}

	lang := req.Language
	if lang == "" {
		lang = locales.DefaultLanguage
	}

	detail, err := h.llm.GenerateDetail(c.Request.Context(), req.DishName, lang)
	if err != nil {
		if errors.Is(err, service.ErrProviderUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI Service Unavailable (Missing Key)"})
			return
		}
		h.logger.Error("detail generation failed", zap.String("dish", req.DishName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipe detail"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
