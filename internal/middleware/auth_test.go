package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/recipebox/backend/internal/apperror"
	"github.com/recipebox/backend/internal/middleware"
	"github.com/recipebox/backend/internal/models"
)

type stubValidator struct {
	user  *models.User
	token string
}

func (s *stubValidator) ValidateToken(_ context.Context, token string) (*models.User, error) {
	if s.user != nil && token == s.token {
		return s.user, nil
	}
	return nil, apperror.Unauthorized("invalid token")
}

type stubAuthenticator struct {
	user     *models.User
	password string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	if s.user != nil && username == s.user.Username && password == s.password {
		return s.user, nil
	}
	return nil, apperror.Unauthorized("invalid credentials")
}

func tokenAuthRouter(v middleware.TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", middleware.TokenAuth(v), func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return r
}

func TestTokenAuth(t *testing.T) {
	user := &models.User{ID: 1, Username: "ann"}
	r := tokenAuthRouter(&stubValidator{user: user, token: "good-token"})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer good-token", http.StatusOK},
		{"wrong token", "Bearer bad-token", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"no scheme", "good-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestBasicAuth(t *testing.T) {
	user := &models.User{ID: 1, Username: "ann"}
	auth := &stubAuthenticator{user: user, password: "pw1234"}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/token", middleware.BasicAuth(auth), func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": current.ID})
	})

	// Good credentials
	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	req.SetBasicAuth("ann", "pw1234")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Bad password
	req = httptest.NewRequest(http.MethodGet, "/token", nil)
	req.SetBasicAuth("ann", "nope")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// No credentials at all: challenge issued
	req = httptest.NewRequest(http.MethodGet, "/token", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
}

func TestCurrentUserAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := middleware.CurrentUser(c)
	assert.False(t, ok)
}
