package models

import (
	"time"
)

// Recipe is owned content: only the creating user may mutate or delete it.
// Ingredients and directions have no lifecycle of their own.
type Recipe struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	CookTime    int          `gorm:"not null" json:"cook_time"`
	PrepTime    int          `gorm:"not null" json:"prep_time"`
	Tips        string       `gorm:"type:text" json:"tips"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	Ingredients []Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
	Directions  []Direction  `gorm:"constraint:OnDelete:CASCADE" json:"directions"`
}

// OwnedBy reports whether the acting user may mutate this recipe.
func (r *Recipe) OwnedBy(user *User) bool {
	return user != nil && r.UserID == user.ID
}

type Ingredient struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Quantity float64 `gorm:"not null" json:"quantity"`
	Unit     string  `gorm:"size:50" json:"unit"`
	RecipeID uint    `gorm:"not null;index" json:"recipe_id"`
}

type Direction struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	StepNumber  int    `gorm:"not null;uniqueIndex:idx_recipe_step" json:"step_number"`
	Description string `gorm:"type:text;not null" json:"description"`
	RecipeID    uint   `gorm:"not null;index;uniqueIndex:idx_recipe_step" json:"recipe_id"`
}
