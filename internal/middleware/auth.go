package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/models"
)

// currentUserKey is the gin context key holding the resolved *models.User.
const currentUserKey = "current_user"

// TokenValidator resolves an opaque bearer token to a user
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

// PasswordAuthenticator resolves a username/password pair to a user
type PasswordAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// TokenAuth creates a middleware that validates bearer tokens. Requests
// without a valid token are rejected before any handler runs.
func TokenAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := validator.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// BasicAuth creates a middleware that verifies a username/password pair
// presented via HTTP Basic auth. Only the token endpoint uses it.
func BasicAuth(auth PasswordAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="token"`)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			c.Header("WWW-Authenticate", `Basic realm="token"`)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by TokenAuth or BasicAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
