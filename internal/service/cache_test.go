package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkutarhan/zest-backend/internal/types"
)

func TestMemoryDetailCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		cache := NewMemoryDetailCache()

		_, ok := cache.Get(ctx, "Menemen", "tr")
		assert.False(t, ok)

		detail := &types.RecipeDetail{PrepTime: 10, Difficulty: "easy"}
		cache.Set(ctx, "Menemen", "tr", detail)

		got, ok := cache.Get(ctx, "Menemen", "tr")
		require.True(t, ok)
		assert.Equal(t, detail, got)
	})

	t.Run("keys are case sensitive and language scoped", func(t *testing.T) {
		cache := NewMemoryDetailCache()
		cache.Set(ctx, "Menemen", "tr", &types.RecipeDetail{PrepTime: 10})

		_, ok := cache.Get(ctx, "menemen", "tr")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "Menemen", "en")
		assert.False(t, ok)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		cache := NewMemoryDetailCache()
		cache.ttl = -time.Second

		cache.Set(ctx, "Menemen", "tr", &types.RecipeDetail{PrepTime: 10})

		_, ok := cache.Get(ctx, "Menemen", "tr")
		assert.False(t, ok)
	})

	t.Run("capacity stays bounded", func(t *testing.T) {
		cache := NewMemoryDetailCache()
		cache.max = 10

		for i := 0; i < 25; i++ {
			cache.Set(ctx, fmt.Sprintf("Dish %d", i), "tr", &types.RecipeDetail{PrepTime: i})
		}

		assert.LessOrEqual(t, len(cache.entries), 10)

		// The most recent insert must still be present.
		_, ok := cache.Get(ctx, "Dish 24", "tr")
		assert.True(t, ok)
	})
}
