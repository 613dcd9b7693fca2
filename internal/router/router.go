package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/internal/api"
	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/service"
)

// SetupRouter configures the application routes. Recipe reads are public;
// the token endpoint is guarded by Basic auth (and rate limited when a
// limiter is configured); everything else requires a bearer token.
func SetupRouter(
	authHandler *api.AuthHandler,
	userHandler *api.UserHandler,
	recipeHandler *api.RecipeHandler,
	favoriteHandler *api.FavoriteHandler,
	authService *service.AuthService,
	tokenLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Token issuance: the only endpoint that accepts a password
	token := router.Group("/token")
	if tokenLimiter != nil {
		token.Use(tokenLimiter.Middleware())
	}
	token.Use(middleware.BasicAuth(authService))
	token.GET("", authHandler.GetToken)

	// Registration and public recipe reads
	router.POST("/users", userHandler.Register)
	router.GET("/recipes", recipeHandler.ListRecipes)
	router.GET("/recipes/:id", recipeHandler.GetRecipe)

	// Everything below requires a valid bearer token
	protected := router.Group("")
	protected.Use(middleware.TokenAuth(authService))
	{
		users := protected.Group("/users")
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
			users.DELETE("/me", userHandler.DeleteMe)
			users.GET("/:id", userHandler.GetUser)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.POST("", recipeHandler.CreateRecipe)
			recipes.PUT("/:id", recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
		}

		favorites := protected.Group("/favorites")
		{
			favorites.GET("", favoriteHandler.ListFavorites)
			favorites.POST("/:recipe_id", favoriteHandler.ToggleFavorite)
			favorites.DELETE("/:recipe_id", favoriteHandler.RemoveFavorite)
		}
	}

	return router
}
