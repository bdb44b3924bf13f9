package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"reelmatch/backend/internal/database"
	"reelmatch/backend/internal/models"
	"reelmatch/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MatchResponse defines one mutual match, joined with the movie it is for.
type MatchResponse struct {
	ID        uint          `json:"id"`
	MediaID   uint          `json:"media_id"`
	User1ID   uint          `json:"user1_id"`
	User2ID   uint          `json:"user2_id"`
	CreatedAt time.Time     `json:"created_at"`
	Media     MovieResponse `json:"media"`
}

// MatchCountResponse defines the structure for the match-count endpoint.
type MatchCountResponse struct {
	Count int64 `json:"count" example:"3"`
}

func newMatchResponse(match models.Match) MatchResponse {
	return MatchResponse{
		ID:        match.ID,
		MediaID:   match.MediaID,
		User1ID:   match.User1ID,
		User2ID:   match.User2ID,
		CreatedAt: match.CreatedAt,
		Media:     newMovieResponse(match.Media),
	}
}

// GetMatches godoc
// @Summary      Get the current user's matches
// @Description  Returns all matches involving the authenticated user, newest first.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   MatchResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /matches [get]
func GetMatches(c *gin.Context) {
	userID := currentUserID(c)

	var matches []models.Match
	if err := database.DB.Preload("Media").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error; err != nil {
		internalError(c, "Failed to fetch matches", err)
		return
	}

	response := make([]MatchResponse, 0, len(matches))
	for _, match := range matches {
		response = append(response, newMatchResponse(match))
	}
	c.JSON(http.StatusOK, response)
}

// GetMatchByID godoc
// @Summary      Get match by ID
// @Description  Returns a single match. Only the two matched users can see it.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Match ID"
// @Success      200  {object}  MatchResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /matches/{id} [get]
func GetMatchByID(c *gin.Context) {
	userID := currentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	// A match outside the viewer's pair is indistinguishable from a missing one.
	var match models.Match
	if err := database.DB.Preload("Media").
		Where("id = ? AND (user1_id = ? OR user2_id = ?)", uint(id), userID, userID).
		First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		internalError(c, "Failed to fetch match", err)
		return
	}

	c.JSON(http.StatusOK, newMatchResponse(match))
}

// GetMatchCount godoc
// @Summary      Get the current user's match count
// @Description  Returns the number of matches for the authenticated user.
// @Description  Served from the Redis cache when possible, with the database as fallback.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MatchCountResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /matches/count [get]
func GetMatchCount(c *gin.Context) {
	userID := currentUserID(c)
	ctx := c.Request.Context()

	count, hit, err := MatchCache.GetMatchCount(ctx, userID)
	if err != nil {
		logger.Warn("match count cache read failed", "user_id", userID, "error", err)
	}
	if hit {
		c.JSON(http.StatusOK, MatchCountResponse{Count: count})
		return
	}

	if err := database.DB.Model(&models.Match{}).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Count(&count).Error; err != nil {
		internalError(c, "Failed to count matches", err)
		return
	}

	if err := MatchCache.SetMatchCount(ctx, userID, count); err != nil {
		logger.Warn("match count cache write failed", "user_id", userID, "error", err)
	}

	c.JSON(http.StatusOK, MatchCountResponse{Count: count})
}
