package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/service"
)

// RecipeHandler serves recipe CRUD. Reads are public; every mutation goes
// through the token guard and the service's ownership check.
type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// CreateRecipe persists a recipe with its ingredients and directions. The
// owner is the authenticated caller regardless of the payload.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input service.CreateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must be in JSON format"})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), user, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": "Recipe " + recipe.Title + " created successfully with ingredients",
		"recipe":  recipe,
	})
}

// ListRecipes returns every recipe. No authentication required.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns one recipe with its children. No authentication
// required.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe applies the allow-listed fields to a recipe the caller owns.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var update service.RecipeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must be in JSON format"})
		return
	}

	if _, err := h.recipes.Update(c.Request.Context(), user, id, &update); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Recipe updated successfully"})
}

// DeleteRecipe removes a recipe the caller owns, cascading to its children
// and favorite rows.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Recipe has been deleted successfully"})
}
