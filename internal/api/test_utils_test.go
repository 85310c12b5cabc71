package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/utkutarhan/zest-backend/internal/service"
	"github.com/utkutarhan/zest-backend/internal/testhelpers"
)

const testDailyLimit = 2

// setupTestRouter wires the full API surface against an in-memory database
// and a fake provider answering with providerContent.
func setupTestRouter(t *testing.T, providerContent string) (*gin.Engine, *gorm.DB, *testhelpers.FakeProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	provider := testhelpers.NewFakeProvider(t, providerContent)
	logger := zap.NewNop()

	isAdmin := func(email string) bool { return email == "utkutarhann@gmail.com" }
	usageService := service.NewUsageService(db, testDailyLimit, isAdmin, logger)
	llmService := service.NewLLMService("test-key", provider.Server.URL, "gpt-4o", service.NewMemoryDetailCache(), logger)
	adminService := service.NewAdminService(db)

	engine := gin.New()
	apiGroup := engine.Group("/api")
	NewUserHandler(usageService, logger).RegisterRoutes(apiGroup)
	NewRecipeHandler(usageService, llmService, logger).RegisterRoutes(apiGroup)
	NewAdminHandler(adminService, usageService, logger).RegisterRoutes(apiGroup)

	return engine, db, provider
}

// doJSON performs a JSON request against the engine and returns the recorder.
func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return out
}

const testSuggestionsContent = `{
	"recipes": [
		{"dishName": "Menemen", "sourceName": "Nefis Yemek Tarifleri", "sourceUrl": "https://example.com/menemen", "imageUrl": "Menemen dish", "missingIngredients": ["biber"], "missingCount": 1},
		{"dishName": "Karniyarik", "sourceName": "Yemek.com", "sourceUrl": "https://example.com/karniyarik", "imageUrl": "Karniyarik turkish food", "missingIngredients": [], "missingCount": 0}
	],
	"chefTip": "Harika bir kombinasyon!"
}`

const testDetailContent = `{
	"prepTime": 10,
	"cookTime": 15,
	"servings": 2,
	"difficulty": "easy",
	"calories": 280,
	"sourceUrl": "https://example.com/menemen",
	"ingredients": [{"name": "Yumurta", "amount": "2", "unit": "adet"}],
	"steps": [{"order": 1, "instruction": "Domatesleri dograyin."}]
}`
