package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/internal/api"
	"github.com/recipebox/backend/internal/models"
	"github.com/recipebox/backend/internal/router"
	"github.com/recipebox/backend/internal/service"
	"github.com/recipebox/backend/internal/testhelpers"
)

// TestFullFlowAgainstPostgres exercises the API against a real postgres so
// the unique indexes and foreign keys run under the production engine, not
// sqlite. Skips when docker is unavailable.
func TestFullFlowAgainstPostgres(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupPostgresTestDB(t)

	authService := service.NewAuthService(db)
	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewUserHandler(service.NewUserService(db, authService)),
		api.NewRecipeHandler(service.NewRecipeService(db)),
		api.NewFavoriteHandler(service.NewFavoriteService(db)),
		authService,
		nil,
	)

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	// Register
	w := do(http.MethodPost, "/users", "", map[string]interface{}{
		"username": "ann", "password": "pw1234", "email": "a@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate registration must be refused by the real unique index path
	w = do(http.MethodPost, "/users", "", map[string]interface{}{
		"username": "ann", "password": "pw1234", "email": "other@x.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Token via Basic auth
	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	req.SetBasicAuth("ann", "pw1234")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var tokenBody map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokenBody))
	token := tokenBody["token"]
	require.Len(t, token, 32)

	// Create and read back a recipe
	w = do(http.MethodPost, "/recipes", token, map[string]interface{}{
		"title":     "Soup",
		"cook_time": 20,
		"prep_time": 10,
		"ingredients": []map[string]interface{}{
			{"name": "tomatoes", "quantity": 6, "unit": "whole"},
		},
		"directions": []map[string]interface{}{
			{"step_number": 1, "description": "Simmer."},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := uint(created["recipe"].(map[string]interface{})["id"].(float64))

	w = do(http.MethodGet, fmt.Sprintf("/recipes/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Favorite it, then delete the recipe; the favorite row must go too
	w = do(http.MethodPost, fmt.Sprintf("/favorites/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodDelete, fmt.Sprintf("/recipes/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("recipe_id = ?", id).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Ingredient{}).Where("recipe_id = ?", id).Count(&count).Error)
	assert.Zero(t, count)
}
