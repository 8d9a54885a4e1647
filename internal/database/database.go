package database

import (
	"fmt"

	"github.com/gdg-garage/venue-events-api/internal/config"
	"github.com/gdg-garage/venue-events-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialector picks the gorm driver named by DATABASE_DRIVER.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DatabaseDriver {
	case "sqlite", "":
		return sqlite.Open(cfg.DatabaseDSN), nil
	case "postgres":
		return postgres.Open(cfg.DatabaseDSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

func Connect(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	dialector, err := Dialector(cfg)
	if err != nil {
		logger.Fatal("Invalid database configuration", zap.Error(err))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	logger.Info("Database ready", zap.String("driver", cfg.DatabaseDriver))
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.EventLocation{},
		&models.FileUpload{},
		&models.RecurringEvent{},
		&models.SingleEvent{},
	)
}
