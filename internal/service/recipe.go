package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/apperror"
	"github.com/recipebox/backend/internal/models"
)

// RecipeService handles recipe CRUD. Mutations are gated on ownership and
// multi-row writes run in a single transaction.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// IngredientInput is one ingredient of a new recipe.
type IngredientInput struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// DirectionInput is one step of a new recipe. StepNumber is optional; steps
// without one are numbered by their position.
type DirectionInput struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
}

// CreateRecipeInput is the creation payload. Pointer fields distinguish
// "absent" from a legitimate zero.
type CreateRecipeInput struct {
	Title       string            `json:"title"`
	CookTime    *int              `json:"cook_time"`
	PrepTime    *int              `json:"prep_time"`
	Tips        string            `json:"tips"`
	Ingredients []IngredientInput `json:"ingredients"`
	Directions  []DirectionInput  `json:"directions"`
}

// RecipeUpdate lists exactly the mutable recipe fields. Owner, id and
// timestamps are not among them.
type RecipeUpdate struct {
	Title    *string `json:"title"`
	CookTime *int    `json:"cook_time"`
	PrepTime *int    `json:"prep_time"`
	Tips     *string `json:"tips"`
}

// Create validates and persists a recipe with its ingredients and
// directions as one transactional aggregate. The owner is always the acting
// user; nothing in the payload can reassign it.
func (s *RecipeService) Create(ctx context.Context, actor *models.User, in *CreateRecipeInput) (*models.Recipe, error) {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.CookTime == nil {
		missing = append(missing, "cook_time")
	}
	if in.PrepTime == nil {
		missing = append(missing, "prep_time")
	}
	if len(in.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(missing) > 0 {
		return nil, apperror.MissingFields(missing)
	}

	if *in.CookTime < 0 || *in.PrepTime < 0 {
		return nil, apperror.Validation("cook_time and prep_time must not be negative")
	}

	recipe := models.Recipe{
		Title:    in.Title,
		CookTime: *in.CookTime,
		PrepTime: *in.PrepTime,
		Tips:     in.Tips,
		UserID:   actor.ID,
	}

	for _, ing := range in.Ingredients {
		if ing.Name == "" || ing.Quantity == nil || ing.Unit == nil {
			return nil, apperror.Validation("Each ingredient must include a name, quantity, and unit")
		}
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Name:     ing.Name,
			Quantity: *ing.Quantity,
			Unit:     *ing.Unit,
		})
	}

	seen := map[int]bool{}
	for i, dir := range in.Directions {
		if dir.Description == "" {
			return nil, apperror.Validation("Each direction must include a description")
		}
		step := dir.StepNumber
		if step == 0 {
			step = i + 1
		}
		if step < 1 {
			return nil, apperror.Validation("Direction step numbers must be positive")
		}
		if seen[step] {
			return nil, apperror.Validation(fmt.Sprintf("Duplicate direction step number %d", step))
		}
		seen[step] = true
		recipe.Directions = append(recipe.Directions, models.Direction{
			StepNumber:  step,
			Description: dir.Description,
		})
	}

	// Create persists the recipe and its associations together; the
	// transaction guarantees no recipe row survives a failed child write.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Get retrieves a recipe with its ingredients and directions, directions in
// step order.
func (s *RecipeService) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Directions", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Recipe with ID %d not found", id))
		}
		return nil, err
	}
	return &recipe, nil
}

// List returns all recipes with their children loaded.
func (s *RecipeService) List(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
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

// Update applies the allow-listed fields to a recipe the actor owns.
// A recipe that exists but belongs to someone else is forbidden, not
// hidden.
func (s *RecipeService) Update(ctx context.Context, actor *models.User, id uint, update *RecipeUpdate) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.OwnedBy(actor) {
		return nil, apperror.Forbidden("Stop trying to edit a recipe you didn't post!")
	}

	changes := map[string]interface{}{}
	if update.Title != nil {
		if *update.Title == "" {
			return nil, apperror.Validation("title must not be empty")
		}
		changes["title"] = *update.Title
	}
	if update.CookTime != nil {
		if *update.CookTime < 0 {
			return nil, apperror.Validation("cook_time must not be negative")
		}
		changes["cook_time"] = *update.CookTime
	}
	if update.PrepTime != nil {
		if *update.PrepTime < 0 {
			return nil, apperror.Validation("prep_time must not be negative")
		}
		changes["prep_time"] = *update.PrepTime
	}
	if update.Tips != nil {
		changes["tips"] = *update.Tips
	}

	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(recipe).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

// Delete removes a recipe the actor owns, cascading to its ingredients,
// directions, and any favorite rows pointing at it.
func (s *RecipeService) Delete(ctx context.Context, actor *models.User, id uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Recipe not found")
		}
		return err
	}
	if !recipe.OwnedBy(actor) {
		return apperror.Forbidden("You do not have permission to delete this recipe")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Direction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}
