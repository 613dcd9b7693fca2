package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/internal/testhelpers"
)

func getToken(t *testing.T, engine http.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	req.SetBasicAuth(username, password)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGetToken(t *testing.T) {
	engine, db := setupTestRouter(t)
	testhelpers.CreateTestUser(t, db, "ann")

	w := getToken(t, engine, "ann", "pw1234")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["token"], 32)
	assert.NotEmpty(t, body["tokenExpiration"])
}

func TestGetTokenReuse(t *testing.T) {
	engine, db := setupTestRouter(t)
	testhelpers.CreateTestUser(t, db, "ann")

	first := decodeBody(t, getToken(t, engine, "ann", "pw1234"))
	second := decodeBody(t, getToken(t, engine, "ann", "pw1234"))

	assert.Equal(t, first["token"], second["token"])
	assert.Equal(t, first["tokenExpiration"], second["tokenExpiration"])
}

func TestGetTokenBadCredentials(t *testing.T) {
	engine, db := setupTestRouter(t)
	testhelpers.CreateTestUser(t, db, "ann")

	w := getToken(t, engine, "ann", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = getToken(t, engine, "nobody", "pw1234")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetTokenNoCredentials(t *testing.T) {
	engine, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
}

func TestBearerRejectedBeforeResourceLookup(t *testing.T) {
	engine, _ := setupTestRouter(t)

	// No token at all
	w := doJSON(t, engine, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = doJSON(t, engine, http.MethodGet, "/favorites", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong scheme
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
