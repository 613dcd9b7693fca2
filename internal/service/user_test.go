package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/internal/apperror"
	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/service"
	"github.com/recipebox/backend/internal/testhelpers"
)

func TestRegister(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db)
	users := service.NewUserService(db, auth)

	user, err := users.Register(context.Background(), "ann", "a@x.com", "pw1234")
	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
	assert.NotEmpty(t, user.ID)
	// The stored credential is never the plaintext
	assert.NotEqual(t, "pw1234", user.PasswordHash)
	assert.Nil(t, user.Token)
}

func TestRegisterMissingFields(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db)
	users := service.NewUserService(db, auth)

	_, err := users.Register(context.Background(), "", "", "pw1234")
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "Missing fields: username, email", err.Error())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db)
	users := service.NewUserService(db, auth)

	_, err := users.Register(context.Background(), "ann", "a@x.com", "pw1234")
	require.NoError(t, err)

	_, err = users.Register(context.Background(), "ann", "other@x.com", "pw1234")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Exactly one row with the username survives
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "ann").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db)
	users := service.NewUserService(db, auth)

	_, err := users.Register(context.Background(), "ann", "a@x.com", "pw1234")
	require.NoError(t, err)

	_, err = users.Register(context.Background(), "bob", "a@x.com", "pw1234")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUpdateUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db)
	users := service.NewUserService(db, auth)

	user, _ := testhelpers.CreateTestUser(t, db, "ann")
	other, _ := testhelpers.CreateTestUser(t, db, "bob")

	// Taking another account's username is a conflict
	taken := other.Username
	err := users.Update(context.Background(), user, &service.UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Changing to a free name works, and a password change still verifies
	newName := "ann2"
	newPassword := "new-password"
	err = users.Update(context.Background(), user, &service.UserUpdate{
		Username: &newName,
		Password: &newPassword,
	})
	require.NoError(t, err)

	got, err := users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann2", got.Username)
	assert.True(t, auth.CheckPassword("new-password", got.PasswordHash))
}

func TestUpdateUserKeepingOwnValues(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db)
	users := service.NewUserService(db, auth)

	user, _ := testhelpers.CreateTestUser(t, db, "ann")

	// Resubmitting your own username is not a conflict
	same := user.Username
	err := users.Update(context.Background(), user, &service.UserUpdate{Username: &same})
	assert.NoError(t, err)
}

func TestDeleteUserCascades(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db)
	users := service.NewUserService(db, auth)
	recipes := service.NewRecipeService(db)
	favorites := service.NewFavoriteService(db)

	owner, _ := testhelpers.CreateTestUser(t, db, "ann")
	fan, _ := testhelpers.CreateTestUser(t, db, "bob")

	recipe, err := recipes.Create(context.Background(), owner, soupInput())
	require.NoError(t, err)
	_, err = favorites.Toggle(context.Background(), fan, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, users.Delete(context.Background(), owner))

	_, err = users.Get(context.Background(), owner.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Where("user_id = ?", owner.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Ingredient{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Direction{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)
	// Other users' favorite rows on the deleted recipe go too
	require.NoError(t, db.Model(&models.Favorite{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Zero(t, count)
}
