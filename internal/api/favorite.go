package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/service"
)

// FavoriteHandler serves the favorites endpoints. The favorite set is
// always the authenticated caller's own.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// ListFavorites returns the recipes the caller currently has favorited.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipes, err := h.favorites.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": recipes})
}

// ToggleFavorite flips the favorite flag for a recipe.
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID, ok := paramID(c, "recipe_id")
	if !ok {
		return
	}

	state, err := h.favorites.Toggle(c.Request.Context(), user, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     "Favorite status updated successfully",
		"is_favorite": state,
	})
}

// RemoveFavorite clears the favorite flag for a recipe.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID, ok := paramID(c, "recipe_id")
	if !ok {
		return
	}

	if err := h.favorites.Unfavorite(c.Request.Context(), user, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Recipe removed from favorites successfully"})
}
