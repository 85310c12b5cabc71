package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkutarhan/zest-backend/internal/models"
	"github.com/utkutarhan/zest-backend/internal/testhelpers"
)

func TestAdminService(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewAdminService(db)
	ctx := context.Background()

	todayDate := models.UsageDate(time.Now())
	yesterdayDate := models.UsageDate(time.Now().AddDate(0, 0, -1))

	require.NoError(t, db.Create(&[]models.User{
		{ID: "a1", Email: "a1@b.com", Role: models.RoleAdmin, DailyUsageCount: 2, LastUsageDate: &todayDate},
		{ID: "a2", Email: "a2@b.com", Role: models.RoleUser, DailyUsageCount: 1, LastUsageDate: &todayDate},
		{ID: "a3", Email: "a3@b.com", Role: models.RoleUser, DailyUsageCount: 2, LastUsageDate: &yesterdayDate},
	}).Error)

	t.Run("IsAdmin", func(t *testing.T) {
		isAdmin, err := svc.IsAdmin(ctx, "a1")
		require.NoError(t, err)
		assert.True(t, isAdmin)

		isAdmin, err = svc.IsAdmin(ctx, "a2")
		require.NoError(t, err)
		assert.False(t, isAdmin)

		isAdmin, err = svc.IsAdmin(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, isAdmin)
	})

	t.Run("GetStats", func(t *testing.T) {
		stats, err := svc.GetStats(ctx)

		require.NoError(t, err)
		assert.EqualValues(t, 3, stats.TotalUsers)
		assert.EqualValues(t, 2, stats.ActiveToday)
		assert.EqualValues(t, 5, stats.TotalUsage)
	})

	t.Run("ListUsers", func(t *testing.T) {
		users, err := svc.ListUsers(ctx, 2)

		require.NoError(t, err)
		assert.Len(t, users, 2)
		// Most recently active first.
		for _, u := range users {
			assert.Equal(t, todayDate, *u.LastUsageDate)
		}
	})
}
