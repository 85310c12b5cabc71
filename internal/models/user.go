package models

import (
	"time"
)

// User roles. There is no self-service role change; admins are provisioned
// through the configured allow-list or the grantadmin command.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is one usage-ledger row. The ID is issued by the external identity
// provider, so it is a plain string primary key rather than a generated UUID.
type User struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Role            string    `gorm:"not null;default:'user'" json:"role"`
	DailyUsageCount int       `gorm:"not null;default:0" json:"daily_usage_count"`
	LastUsageDate   *string   `gorm:"size:10" json:"last_usage_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UsageDate formats t the way LastUsageDate is stored.
func UsageDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// UsedToday reports whether the stored counter still applies to the given day.
func (u *User) UsedToday(today string) bool {
	return u.LastUsageDate != nil && *u.LastUsageDate == today
}
