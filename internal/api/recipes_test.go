package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkutarhan/zest-backend/internal/models"
)

func generateBody() map[string]interface{} {
	return map[string]interface{}{
		"scenario":    "kitchen",
		"ingredients": []string{"tomato", "egg"},
		"language":    "en",
	}
}

func TestGenerateEndpoint(t *testing.T) {
	t.Run("should reject missing scenario", func(t *testing.T) {
		engine, _, _ := setupTestRouter(t, testSuggestionsContent)

		w := doJSON(t, engine, "POST", "/api/recipes/generate",
			map[string]interface{}{"ingredients": []string{"tomato"}},
			map[string]string{"x-user-id": "u1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject empty ingredients", func(t *testing.T) {
		engine, _, _ := setupTestRouter(t, testSuggestionsContent)

		w := doJSON(t, engine, "POST", "/api/recipes/generate",
			map[string]interface{}{"scenario": "kitchen", "ingredients": []string{}},
			map[string]string{"x-user-id": "u1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject missing identity header", func(t *testing.T) {
		engine, _, _ := setupTestRouter(t, testSuggestionsContent)

		w := doJSON(t, engine, "POST", "/api/recipes/generate", generateBody(), nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject unknown user", func(t *testing.T) {
		engine, _, _ := setupTestRouter(t, testSuggestionsContent)

		w := doJSON(t, engine, "POST", "/api/recipes/generate", generateBody(),
			map[string]string{"x-user-id": "ghost"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("quota lifecycle over one day", func(t *testing.T) {
		engine, db, _ := setupTestRouter(t, testSuggestionsContent)

		w := doJSON(t, engine, "POST", "/api/users/sync",
			map[string]string{"id": "u1", "email": "a@b.com"}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		headers := map[string]string{"x-user-id": "u1"}

		// First generation: 0 -> 1.
		w = doJSON(t, engine, "POST", "/api/recipes/generate", generateBody(), headers)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotNil(t, body["recipes"])
		assert.Equal(t, "Harika bir kombinasyon!", body["chefTip"])

		var user models.User
		require.NoError(t, db.First(&user, "id = ?", "u1").Error)
		assert.Equal(t, 1, user.DailyUsageCount)

		// Second generation: 1 -> 2.
		w = doJSON(t, engine, "POST", "/api/recipes/generate", generateBody(), headers)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, db.First(&user, "id = ?", "u1").Error)
		assert.Equal(t, 2, user.DailyUsageCount)

		// Third same-day call is refused with a machine-readable code.
		w = doJSON(t, engine, "POST", "/api/recipes/generate", generateBody(), headers)
		assert.Equal(t, http.StatusForbidden, w.Code)
		body = decodeBody(t, w)
		assert.Equal(t, "LIMIT_REACHED", body["code"])
		assert.NotEmpty(t, body["message"])

		// History recorded one entry per fulfilled generation.
		var count int64
		db.Model(&models.GenerationRecord{}).Where("user_id = ?", "u1").Count(&count)
		assert.EqualValues(t, 2, count)
	})

	t.Run("day rollover grants a fresh quota", func(t *testing.T) {
		engine, db, _ := setupTestRouter(t, testSuggestionsContent)

		yesterday := models.UsageDate(time.Now().AddDate(0, 0, -1))
		require.NoError(t, db.Create(&models.User{
			ID: "u2", Email: "u2@b.com", DailyUsageCount: 2, LastUsageDate: &yesterday,
		}).Error)

		w := doJSON(t, engine, "POST", "/api/recipes/generate", generateBody(),
			map[string]string{"x-user-id": "u2"})
		require.Equal(t, http.StatusOK, w.Code)

		var user models.User
		require.NoError(t, db.First(&user, "id = ?", "u2").Error)
		assert.Equal(t, 1, user.DailyUsageCount)
		assert.Equal(t, models.UsageDate(time.Now()), *user.LastUsageDate)
	})

	t.Run("suggestions come back sorted", func(t *testing.T) {
		engine, db, _ := setupTestRouter(t, testSuggestionsContent)

		require.NoError(t, db.Create(&models.User{ID: "u3", Email: "u3@b.com"}).Error)

		w := doJSON(t, engine, "POST", "/api/recipes/generate", generateBody(),
			map[string]string{"x-user-id": "u3"})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		recipes := body["recipes"].([]interface{})
		require.Len(t, recipes, 2)
		first := recipes[0].(map[string]interface{})
		assert.Equal(t, "Karniyarik", first["dishName"])
		assert.EqualValues(t, 0, first["missingCount"])
	})

	t.Run("provider failure does not burn quota", func(t *testing.T) {
		engine, db, _ := setupTestRouter(t, "not json at all")

		require.NoError(t, db.Create(&models.User{ID: "u4", Email: "u4@b.com"}).Error)

		w := doJSON(t, engine, "POST", "/api/recipes/generate", generateBody(),
			map[string]string{"x-user-id": "u4"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var user models.User
		require.NoError(t, db.First(&user, "id = ?", "u4").Error)
		assert.Equal(t, 0, user.DailyUsageCount)
	})
}

func TestDetailEndpoint(t *testing.T) {
	t.Run("should reject missing dish name", func(t *testing.T) {
		engine, _, _ := setupTestRouter(t, testDetailContent)

		w := doJSON(t, engine, "POST", "/api/recipes/detail",
			map[string]string{"language": "tr"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return a full recipe", func(t *testing.T) {
		engine, _, _ := setupTestRouter(t, testDetailContent)

		w := doJSON(t, engine, "POST", "/api/recipes/detail",
			map[string]string{"dishName": "Menemen", "language": "tr"}, nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.EqualValues(t, 10, body["prepTime"])
		assert.Equal(t, "easy", body["difficulty"])
	})

	t.Run("repeat lookups are served from cache", func(t *testing.T) {
		engine, _, provider := setupTestRouter(t, testDetailContent)

		for i := 0; i < 2; i++ {
			w := doJSON(t, engine, "POST", "/api/recipes/detail",
				map[string]string{"dishName": "Menemen", "language": "tr"}, nil)
			require.Equal(t, http.StatusOK, w.Code)
		}

		assert.Equal(t, 1, provider.Calls())
	})

	t.Run("provider parse failure maps to 500", func(t *testing.T) {
		engine, _, _ := setupTestRouter(t, "broken")

		w := doJSON(t, engine, "POST", "/api/recipes/detail",
			map[string]string{"dishName": "Menemen"}, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotEmpty(t, decodeBody(t, w)["error"])
	})
}
