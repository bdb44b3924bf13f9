package handler

import (
	"net/http"
	"time"

	"reelmatch/backend/internal/cache"
	"reelmatch/backend/internal/config"
	"reelmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// MatchCache is the optional Redis-backed match-count cache. A nil value
// disables caching; it is set once from main at startup.
var MatchCache *cache.MatchCache

// region --- Shared DTOs ---

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// UserResponse defines the structure for a user profile. The password hash
// is never included.
type UserResponse struct {
	ID          uint      `json:"id" example:"1"`
	Email       string    `json:"email" example:"test@example.com"`
	DisplayName string    `json:"display_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	PartnerID   *uint     `json:"partner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		PartnerID:   user.PartnerID,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// endregion

// region --- Helpers ---

// currentUserID returns the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}

// internalError writes a 500 response. The underlying error detail is only
// exposed in development mode.
func internalError(c *gin.Context, msg string, err error) {
	if config.AppConfig != nil && config.AppConfig.IsDevelopment() && err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "detail": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// endregion
