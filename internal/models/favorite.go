package models

import (
	"time"
)

// Favorite joins a user to a recipe with an explicit flag. Unfavoriting
// flips the flag instead of deleting the row, so re-favoriting is a toggle
// with no row churn. Rows only disappear when the user or recipe does.
type Favorite struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RecipeID   uint      `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	IsFavorite bool      `gorm:"not null;default:false" json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
