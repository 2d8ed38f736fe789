package database

import (
	"fmt"

	"gorm.io/gorm"

	"secret-draw-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models. Tables,
// indexes and the draw -> participants cascade constraint are derived from
// the struct definitions in the domain package.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.Draw{},
		&domain.Participant{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}
