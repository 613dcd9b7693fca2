package testhelpers

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/service"
)

// CreateTestUser registers a user and returns it with a valid bearer token.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()

	ctx := context.Background()
	auth := service.NewAuthService(db)
	users := service.NewUserService(db, auth)

	user, err := users.Register(ctx, username, username+"@example.com", "pw1234")
	if err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}

	token, _, err := auth.IssueToken(ctx, user)
	if err != nil {
		t.Fatalf("failed to issue token for %s: %v", username, err)
	}

	return user, token
}
