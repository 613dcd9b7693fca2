package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/apperror"
)

// RegisterRequest is the registration payload. Field presence is validated
// by the user service so every missing field is reported at once.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the body of a successful GET /token.
type TokenResponse struct {
	Token           string `json:"token"`
	TokenExpiration string `json:"tokenExpiration"`
}

// respondError maps a service error to its HTTP status and a JSON error
// body. Unexpected errors are logged and answered as a bare 500.
func respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		c.JSON(status, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// paramID parses a numeric path parameter. Non-numeric ids look the same as
// absent resources to the client.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}
