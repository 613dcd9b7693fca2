package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/service"
)

// UserHandler serves registration and account endpoints. Every operation on
// the account itself acts on the identity resolved by the token guard; the
// only id accepted from the path is for reading other users.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a new account. No authentication required.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must be in JSON format"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": "User " + user.Username + " created successfully",
	})
}

// GetMe returns the caller's own record, token fields included.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user.ToDict(true))
}

// GetUser returns another user's record without token fields.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToDict(false))
}

// UpdateMe applies a partial update to the caller's own record.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var update service.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must be in JSON format"})
		return
	}

	if err := h.users.Update(c.Request.Context(), user, &update); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "User updated successfully"})
}

// DeleteMe removes the caller's account and everything it owns.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "User deleted successfully"})
}
