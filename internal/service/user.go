package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/apperror"
	"github.com/recipebox/backend/internal/models"
)

// UserService handles registration and account management
type UserService struct {
	db   *gorm.DB
	auth *AuthService
}

func NewUserService(db *gorm.DB, auth *AuthService) *UserService {
	return &UserService{db: db, auth: auth}
}

// UserUpdate lists exactly the fields an account holder may change. Nil
// means "leave as is".
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Register creates a new account. All missing required fields are reported
// in one error; duplicate username or email is a conflict.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperror.MissingFields(missing)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict("An account with that username already exists")
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict("An account with that email already exists")
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Get retrieves a user by id
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update to the acting user's own record,
// re-checking uniqueness against everyone else.
func (s *UserService) Update(ctx context.Context, user *models.User, update *UserUpdate) error {
	changes := map[string]interface{}{}

	if update.Username != nil && *update.Username != "" {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("username = ? AND id <> ?", *update.Username, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.Conflict("An account with that username already exists")
		}
		changes["username"] = *update.Username
	}

	if update.Email != nil && *update.Email != "" {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("email = ? AND id <> ?", *update.Email, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.Conflict("An account with that email already exists")
		}
		changes["email"] = *update.Email
	}

	if update.Password != nil && *update.Password != "" {
		hash, err := s.auth.HashPassword(*update.Password)
		if err != nil {
			return err
		}
		changes["password_hash"] = hash
	}

	if len(changes) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(user).Updates(changes).Error
}

// Delete removes the account together with everything it owns: favorite
// rows, owned recipes with their ingredients and directions, and favorite
// rows other users hold on those recipes. One transaction, all or nothing.
func (s *UserService) Delete(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeIDs []uint
		if err := tx.Model(&models.Recipe{}).Where("user_id = ?", user.ID).Pluck("id", &recipeIDs).Error; err != nil {
			return err
		}

		if len(recipeIDs) > 0 {
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.Ingredient{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id IN ?", recipeIDs).Delete(&models.Direction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Recipe{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(user).Error
	})
}
