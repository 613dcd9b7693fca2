package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/apperror"
	"github.com/recipebox/backend/internal/models"
)

const (
	// TokenLifetime is how long an issued token stays valid.
	TokenLifetime = time.Hour
	// RenewalThreshold is the remaining validity below which IssueToken
	// mints a fresh token instead of reusing the current one.
	RenewalThreshold = time.Minute
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6

	tokenBytes = 16 // 128 bits of entropy, 32 hex chars on the wire
)

// AuthService owns password credentials and bearer tokens. Tokens are
// opaque random values stored on the user row; validation is a database
// lookup, not a signature check.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// HashPassword converts a plaintext password into its stored bcrypt hash.
func (s *AuthService) HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", apperror.Validation("Password must be at least 6 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash. A mismatch is a false return, never an error.
func (s *AuthService) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticate resolves a username/password pair to the user it identifies.
// The caller learns "invalid credentials" whether the username or the
// password was wrong.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if !s.CheckPassword(password, user.PasswordHash) {
		return nil, apperror.Unauthorized("invalid credentials")
	}
	return &user, nil
}

// IssueToken returns the user's bearer token and its expiry. While the
// current token has more than RenewalThreshold of validity left it is
// returned unchanged, so repeated calls do not churn the stored token. Past
// that point a new token is minted and persisted, which implicitly
// invalidates the previous one. Concurrent issues race benignly: last
// write wins, consistent with one session per user.
func (s *AuthService) IssueToken(ctx context.Context, user *models.User) (string, time.Time, error) {
	if token, expiration, ok := user.CurrentToken(); ok {
		if time.Until(expiration) > RenewalThreshold {
			return token, expiration, nil
		}
	}

	token, err := generateToken()
	if err != nil {
		return "", time.Time{}, err
	}
	expiration := time.Now().Add(TokenLifetime)

	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"token":            token,
		"token_expiration": expiration,
	}).Error; err != nil {
		return "", time.Time{}, err
	}
	user.Token = &token
	user.TokenExpiration = &expiration

	return token, expiration, nil
}

// ValidateToken resolves a bearer token to its user. Expired tokens are
// rejected even though the row still matches; the stored token only becomes
// usable again through reissue.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperror.Unauthorized("missing token")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid token")
		}
		return nil, err
	}

	if user.TokenExpiration == nil || time.Now().After(*user.TokenExpiration) {
		return nil, apperror.Unauthorized("token expired")
	}

	return &user, nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
