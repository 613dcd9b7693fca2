package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/internal/api"
	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/router"
	"github.com/recipebox/backend/internal/service"
)

// Server wires services, handlers and routes into one HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New builds a fully wired server. redisClient may be nil; the token
// endpoint then runs without rate limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	authService := service.NewAuthService(db)
	userService := service.NewUserService(db, authService)
	recipeService := service.NewRecipeService(db)
	favoriteService := service.NewFavoriteService(db)

	var tokenLimiter *middleware.RateLimiter
	if redisClient != nil {
		tokenLimiter = middleware.NewTokenRateLimiter(redisClient)
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewUserHandler(userService),
		api.NewRecipeHandler(recipeService),
		api.NewFavoriteHandler(favoriteService),
		authService,
		tokenLimiter,
	)

	return &Server{
		router: engine,
		db:     db,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	log.Printf("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
