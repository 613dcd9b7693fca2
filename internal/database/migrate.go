package database

import (
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/models"
)

// Migrate creates or updates the five tables the service owns. Parents
// migrate before children so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Direction{},
		&models.Favorite{},
	)
}
