package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reelmatch/backend/internal/auth"
	"reelmatch/backend/internal/config"
	"reelmatch/backend/internal/database"
	"reelmatch/backend/internal/handler"
	"reelmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestRouter wires an in-memory database and a router with the same
// routes as cmd/server.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.DB = db

	config.AppConfig = &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiresHours: 1,
	}
	handler.MatchCache = nil

	router := gin.New()

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/signup", handler.Signup)
		authRoutes.POST("/login", handler.Login)
		authRoutes.GET("/me", auth.AuthMiddleware(), handler.Me)

		movieRoutes := api.Group("/movies")
		movieRoutes.GET("", handler.GetMovies)
		movieRoutes.GET("/:id", handler.GetMovieByID)

		swipeRoutes := api.Group("/swipes", auth.AuthMiddleware())
		swipeRoutes.POST("", handler.CreateSwipe)
		swipeRoutes.GET("", handler.GetUserSwipes)

		matchRoutes := api.Group("/matches", auth.AuthMiddleware())
		matchRoutes.GET("", handler.GetMatches)
		matchRoutes.GET("/count", handler.GetMatchCount)
		matchRoutes.GET("/:id", handler.GetMatchByID)

		userRoutes := api.Group("/users", auth.AuthMiddleware())
		userRoutes.GET("/search", handler.SearchUserByEmail)
		userRoutes.POST("/partner", handler.SetPartner)
		userRoutes.GET("/partner", handler.GetPartner)
		userRoutes.DELETE("/partner", handler.RemovePartner)
		userRoutes.POST("/partner-requests", handler.CreatePartnerRequest)
		userRoutes.GET("/partner-requests", handler.GetPartnerRequests)
		userRoutes.GET("/partner-requests/pending", handler.GetPendingPartnerRequests)
		userRoutes.POST("/partner-requests/respond", handler.RespondToPartnerRequest)
	}

	return router
}

// doJSON performs a request against the router, optionally with a bearer
// token, and returns the recorder.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// signupUser registers a user and returns its ID and token.
func signupUser(t *testing.T, router *gin.Engine, email, password string) (uint, string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())
	resp := decode[handler.AuthResponse](t, w)
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

// linkPartners links two users via the request/accept flow.
func linkPartners(t *testing.T, router *gin.Engine, tokenA string, emailB, tokenB string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": emailB,
	})
	require.Equal(t, http.StatusCreated, w.Code, "request failed: %s", w.Body.String())
	request := decode[handler.PartnerRequestResponse](t, w)

	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests/respond", tokenB, gin.H{
		"request_id": request.ID,
		"status":     "accepted",
	})
	require.Equal(t, http.StatusOK, w.Code, "respond failed: %s", w.Body.String())
}

// createMovie inserts a catalog entry directly.
func createMovie(t *testing.T, title string) models.Movie {
	t.Helper()
	movie := models.Movie{Title: title, PosterURL: "https://example.com/" + title + ".jpg", Genre: "Drama"}
	require.NoError(t, database.DB.Create(&movie).Error)
	return movie
}
