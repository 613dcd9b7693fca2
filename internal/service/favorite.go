package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/apperror"
	"github.com/recipebox/backend/internal/models"
)

// FavoriteService manages the user↔recipe favorite relation. The relation
// is a persistent row with a flag: favoriting toggles the flag, and
// unfavoriting clears it without deleting the row. The acting user always
// comes from the resolved identity, never from the request.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// List returns the recipes the user currently has favorited.
func (s *FavoriteService) List(ctx context.Context, user *models.User) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ? AND favorites.is_favorite = ?", user.ID, true).
		Preload("Ingredients").
		Preload("Directions", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Toggle flips the favorite flag for the recipe, creating the row favorited
// on first touch. It returns the new state.
func (s *FavoriteService) Toggle(ctx context.Context, user *models.User, recipeID uint) (bool, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperror.NotFound(fmt.Sprintf("Recipe with ID %d not found", recipeID))
		}
		return false, err
	}

	var state bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fav models.Favorite
		err := tx.Where("user_id = ? AND recipe_id = ?", user.ID, recipeID).First(&fav).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fav = models.Favorite{UserID: user.ID, RecipeID: recipeID, IsFavorite: true}
			if err := tx.Create(&fav).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			fav.IsFavorite = !fav.IsFavorite
			if err := tx.Model(&fav).Update("is_favorite", fav.IsFavorite).Error; err != nil {
				return err
			}
		}
		state = fav.IsFavorite
		return nil
	})
	if err != nil {
		return false, err
	}
	return state, nil
}

// Unfavorite clears the flag. The row stays behind so a later toggle finds
// it again; a recipe that is not currently favorited is reported as such.
func (s *FavoriteService) Unfavorite(ctx context.Context, user *models.User, recipeID uint) error {
	var fav models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND is_favorite = ?", user.ID, recipeID, true).
		First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Recipe is not in your favorites")
		}
		return err
	}
	return s.db.WithContext(ctx).Model(&fav).Update("is_favorite", false).Error
}
