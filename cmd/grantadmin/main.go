// Command grantadmin escalates an existing user to the admin role without
// touching the database by hand. The user must have synced at least once.
//
// Usage: grantadmin <email>
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/utkutarhan/zest-backend/config"
	"github.com/utkutarhan/zest-backend/internal/database"
	"github.com/utkutarhan/zest-backend/internal/service"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: grantadmin <email>")
	}
	email := os.Args[1]

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	usage := service.NewUsageService(db, cfg.DailyLimit, cfg.IsAdminEmail, logger)
	if err := usage.GrantAdmin(context.Background(), email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logger.Fatal("no user with that email; they must sync once first",
				zap.String("email", email))
		}
		logger.Fatal("failed to grant admin", zap.Error(err))
	}

	logger.Info("admin role granted", zap.String("email", email))
}
