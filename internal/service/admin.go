package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/utkutarhan/zest-backend/internal/models"
)

// Stats is the admin dashboard aggregate. TotalUsage is a same-day snapshot
// sum of the daily counters, not a lifetime total; counters reset per user
// per day.
type Stats struct {
	TotalUsers  int64 `json:"totalUsers"`
	ActiveToday int64 `json:"activeToday"`
	TotalUsage  int64 `json:"totalUsage"`
}

// AdminService serves the read-only admin views over the usage ledger.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates an AdminService.
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// IsAdmin loads the caller's ledger row and checks its role.
func (s *AdminService) IsAdmin(ctx context.Context, id string) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("role").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check admin status: %w", err)
	}
	return user.Role == models.RoleAdmin, nil
}

// GetStats returns the dashboard counters.
func (s *AdminService) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	today := models.UsageDate(time.Now())

	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("last_usage_date = ?", today).
		Count(&stats.ActiveToday).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count active users: %w", err)
	}

	var total sql.NullInt64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("SUM(daily_usage_count)").
		Scan(&total).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to sum usage: %w", err)
	}
	if total.Valid {
		stats.TotalUsage = total.Int64
	}

	return stats, nil
}

// ListUsers returns the most recently active users.
func (s *AdminService) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("last_usage_date DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
