package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/service"
)

// AuthHandler serves the token endpoint. Credentials are verified by the
// BasicAuth middleware before GetToken runs.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// GetToken hands out the caller's bearer token, reusing the current one
// while it is still comfortably valid.
func (h *AuthHandler) GetToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	token, expiration, err := h.auth.IssueToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:           token,
		TokenExpiration: expiration.Format(time.RFC3339),
	})
}
