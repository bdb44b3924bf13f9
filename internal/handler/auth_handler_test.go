package handler_test

import (
	"net/http"
	"testing"

	"reelmatch/backend/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginFlow(t *testing.T) {
	router := setupTestRouter(t)

	// Signup succeeds and returns a token.
	userID, token := signupUser(t, router, "a@x.com", "pw123456")
	assert.NotZero(t, userID)
	assert.NotEmpty(t, token)

	// Same email again is rejected.
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "a@x.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Wrong password yields 401.
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown email yields the same 401.
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@x.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct credentials return the same user.
	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[handler.AuthResponse](t, w)
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestSignupValidation(t *testing.T) {
	router := setupTestRouter(t)

	// Malformed email.
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "not-an-email",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password too short.
	w = doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    "b@x.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe(t *testing.T) {
	router := setupTestRouter(t)
	userID, token := signupUser(t, router, "me@x.com", "pw123456")

	w := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[handler.UserResponse](t, w)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "me@x.com", user.Email)

	// No token.
	w = doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = doJSON(t, router, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
