package database

import (
	"gorm.io/gorm"

	"github.com/utkutarhan/zest-backend/internal/models"
)

// RunMigrations brings the schema up to date. The schema is small enough that
// GORM auto-migration covers it for both postgres and the sqlite test driver.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.GenerationRecord{},
	)
}
