package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/utkutarhan/zest-backend/internal/models"
)

// Usage is the effective quota state for one user.
type Usage struct {
	Count          int  `json:"usageCount"`
	Limit          int  `json:"limit"`
	IsLimitReached bool `json:"isLimitReached"`
}

// Reservation is the outcome of a quota check before a generation call.
type Reservation struct {
	Allowed bool
	Count   int
}

// UsageService owns the usage ledger: one row per user with a daily counter
// that is meaningful only relative to its last-usage date.
type UsageService struct {
	db           *gorm.DB
	limit        int
	isAdminEmail func(string) bool
	logger       *zap.Logger
}

// NewUsageService creates a UsageService. isAdminEmail is the configured
// allow-list check applied on every sync.
func NewUsageService(db *gorm.DB, limit int, isAdminEmail func(string) bool, logger *zap.Logger) *UsageService {
	return &UsageService{
		db:           db,
		limit:        limit,
		isAdminEmail: isAdminEmail,
		logger:       logger,
	}
}

// Limit returns the configured daily generation limit.
func (s *UsageService) Limit() int {
	return s.limit
}

// SyncUser upserts the ledger row for an externally issued identity. Creation
// derives the role from the admin allow-list; updates re-apply the rule so
// rows created before an address was listed heal themselves, and roll the
// counter forward when the stored date is stale.
func (s *UsageService) SyncUser(ctx context.Context, id, email string) error {
	today := models.UsageDate(time.Now())

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role := models.RoleUser
		if s.isAdminEmail(email) {
			role = models.RoleAdmin
		}
		user = models.User{ID: id, Email: email, Role: role}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Info("new user created", zap.String("email", email), zap.String("role", role))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	updates := map[string]interface{}{"last_usage_date": today}
	if !user.UsedToday(today) {
		updates["daily_usage_count"] = 0
	}
	if s.isAdminEmail(email) && user.Role != models.RoleAdmin {
		updates["role"] = models.RoleAdmin
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to sync user: %w", err)
	}
	return nil
}

// GetEffectiveUsage returns the quota state without writing. An absent row
// means a brand-new user with the full quota; a stale date means the stored
// counter no longer applies.
func (s *UsageService) GetEffectiveUsage(ctx context.Context, id string) (Usage, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Usage{Count: 0, Limit: s.limit, IsLimitReached: false}, nil
	}
	if err != nil {
		return Usage{}, fmt.Errorf("failed to load usage: %w", err)
	}

	count := user.DailyUsageCount
	if !user.UsedToday(models.UsageDate(time.Now())) {
		count = 0
	}
	return Usage{Count: count, Limit: s.limit, IsLimitReached: count >= s.limit}, nil
}

// ReserveGenerationSlot checks whether a generation may proceed. The caller
// must have synced first; an absent row is ErrUserNotFound. A stale counter
// is reset in place before the check.
func (s *UsageService) ReserveGenerationSlot(ctx context.Context, id string) (Reservation, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Reservation{}, ErrUserNotFound
	}
	if err != nil {
		return Reservation{}, fmt.Errorf("failed to load user: %w", err)
	}

	today := models.UsageDate(time.Now())
	count := user.DailyUsageCount
	if !user.UsedToday(today) {
		res := s.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND (last_usage_date IS NULL OR last_usage_date <> ?)", id, today).
			Updates(map[string]interface{}{"daily_usage_count": 0, "last_usage_date": today})
		if res.Error != nil {
			return Reservation{}, fmt.Errorf("failed to reset usage: %w", res.Error)
		}
		count = 0
	}

	return Reservation{Allowed: count < s.limit, Count: count}, nil
}

// CommitGeneration records one fulfilled generation. The whole
// reset-or-increment decision runs as a single conditional UPDATE so the
// stored counter can never pass the limit, even when concurrent requests
// for the same user slip past ReserveGenerationSlot together.
func (s *UsageService) CommitGeneration(ctx context.Context, id string) error {
	today := models.UsageDate(time.Now())

	res := s.db.WithContext(ctx).Exec(
		`UPDATE users
		 SET daily_usage_count = CASE WHEN last_usage_date = ? THEN daily_usage_count + 1 ELSE 1 END,
		     last_usage_date = ?,
		     updated_at = ?
		 WHERE id = ?
		   AND (last_usage_date IS NULL OR last_usage_date <> ? OR daily_usage_count < ?)`,
		today, today, time.Now(), id, today, s.limit,
	)
	if res.Error != nil {
		return fmt.Errorf("failed to commit generation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to commit generation: %w", err)
		}
		if count == 0 {
			return ErrUserNotFound
		}
		return ErrQuotaExceeded
	}
	return nil
}

// RecordGeneration appends a history entry for a fulfilled request.
func (s *UsageService) RecordGeneration(ctx context.Context, record *models.GenerationRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// History returns the most recent generation records for a user, newest first.
func (s *UsageService) History(ctx context.Context, id string, limit int) ([]models.GenerationRecord, error) {
	var records []models.GenerationRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", id).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return records, nil
}

// ResetUsage zeroes a user's daily counter (admin operation).
func (s *UsageService) ResetUsage(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("daily_usage_count", 0)
	if res.Error != nil {
		return fmt.Errorf("failed to reset usage: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GrantAdmin escalates the user with the given email. Used by the
// out-of-band provisioning command.
func (s *UsageService) GrantAdmin(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin)
	if res.Error != nil {
		return fmt.Errorf("failed to grant admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
