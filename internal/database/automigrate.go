package database

import (
	"fmt"

	"gorm.io/gorm"

	"boardman-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models.
// It creates tables, indexes, and unique constraints based on the
// struct definitions in the domain package.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.User{},
		&domain.Board{},
		&domain.Membership{},
		&domain.Invitation{},
		&domain.Card{},
		&domain.Task{},
		&domain.Assignment{},
		&domain.Attachment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}
