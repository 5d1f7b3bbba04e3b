// internal/database/db.go
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/valentynslivko/chift-odoo-test-assignment/internal/config"
	"github.com/valentynslivko/chift-odoo-test-assignment/pkg/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ DB connected & migrated")
	return db, nil
}

// Migrate is separate from Connect so tests can run it against sqlite.
// Auto-migrate (safe in dev; use migrations in prod)
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Contact{}, &models.Invoice{})
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
