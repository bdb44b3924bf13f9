package handler

import (
	"errors"
	"net/http"
	"time"

	"reelmatch/backend/internal/database"
	"reelmatch/backend/internal/models"
	"reelmatch/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// region --- DTOs ---

// SwipeInput defines the structure for recording a swipe. Liked is a pointer
// so that an explicit false is distinguishable from a missing field.
type SwipeInput struct {
	MediaID uint  `json:"media_id" binding:"required" example:"7"`
	Liked   *bool `json:"liked" binding:"required" example:"true"`
}

// SwipeResponse defines the structure returned when a swipe is recorded.
// Match is true only when this swipe completed a new mutual match.
type SwipeResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	MediaID   uint      `json:"media_id"`
	Liked     bool      `json:"liked"`
	Match     bool      `json:"match,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SwipeListItem defines one entry of a user's swipe history, joined with the
// movie's display fields.
type SwipeListItem struct {
	ID        uint      `json:"id"`
	MediaID   uint      `json:"media_id"`
	Liked     bool      `json:"liked"`
	Title     string    `json:"title"`
	PosterURL string    `json:"poster_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// endregion

// CreateSwipe godoc
// @Summary      Record a swipe
// @Description  Records a like/dislike for a movie. A like is checked against the
// @Description  partner's swipes; when both partners like the same movie a match is
// @Description  created and flagged in the response.
// @Tags         swipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SwipeInput true "Swipe Info"
// @Success      201  {object}  SwipeResponse
// @Failure      400  {object}  ErrorResponse "Missing required fields"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /swipes [post]
func CreateSwipe(c *gin.Context) {
	userID := currentUserID(c)

	var input SwipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	liked := *input.Liked

	// Upsert: the unique index on (user_id, media_id) guarantees a single
	// row per pair even under concurrent swipes.
	swipe := models.Swipe{
		UserID:  userID,
		MediaID: input.MediaID,
		Liked:   liked,
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
	}).Create(&swipe).Error; err != nil {
		internalError(c, "Failed to record swipe", err)
		return
	}

	// Re-read to get the canonical row (the upsert may have hit an existing one).
	if err := database.DB.Where("user_id = ? AND media_id = ?", userID, input.MediaID).First(&swipe).Error; err != nil {
		internalError(c, "Failed to record swipe", err)
		return
	}

	response := SwipeResponse{
		ID:        swipe.ID,
		UserID:    swipe.UserID,
		MediaID:   swipe.MediaID,
		Liked:     swipe.Liked,
		CreatedAt: swipe.CreatedAt,
		UpdatedAt: swipe.UpdatedAt,
	}

	if liked {
		response.Match = evaluateMatch(c, userID, input.MediaID)
	}

	c.JSON(http.StatusCreated, response)
}

// evaluateMatch checks whether the user's like completes a mutual match with
// their partner and persists a new match row if so. Returns true only when a
// new match was created.
//
// Match creation is best-effort: a failure here is logged under its own
// message and never fails the enclosing swipe, so a lost match notification
// is possible but a lost swipe is not.
func evaluateMatch(c *gin.Context, userID, mediaID uint) bool {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		logger.Error("partner lookup failed during match evaluation", "user_id", userID, "error", err)
		return false
	}
	if user.PartnerID == nil {
		return false
	}
	partnerID := *user.PartnerID

	var partnerSwipe models.Swipe
	err := database.DB.Where("user_id = ? AND media_id = ? AND liked = ?", partnerID, mediaID, true).
		First(&partnerSwipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if err != nil {
		logger.Error("partner swipe lookup failed during match evaluation",
			"user_id", userID, "media_id", mediaID, "error", err)
		return false
	}

	var existing models.Match
	err = database.DB.Where(
		"((user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)) AND media_id = ?",
		userID, partnerID, partnerID, userID, mediaID,
	).First(&existing).Error
	if err == nil {
		// Matched earlier; the flag is only set when this swipe created it.
		return false
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("match lookup failed during match evaluation",
			"user_id", userID, "media_id", mediaID, "error", err)
		return false
	}

	user1, user2 := models.NormalizePair(userID, partnerID)
	match := models.Match{MediaID: mediaID, User1ID: user1, User2ID: user2}
	if err := database.DB.Create(&match).Error; err != nil {
		// Distinct from swipe-write failures so operators can detect drift.
		logger.Error("match creation failed, swipe kept",
			"user_id", userID, "partner_id", partnerID, "media_id", mediaID, "error", err)
		return false
	}

	if err := MatchCache.InvalidateMatchCount(c.Request.Context(), userID, partnerID); err != nil {
		logger.Warn("match count cache invalidation failed",
			"user_id", userID, "partner_id", partnerID, "error", err)
	}

	return true
}

// GetUserSwipes godoc
// @Summary      Get the current user's swipes
// @Description  Returns all swipes by the authenticated user, newest first,
// @Description  joined with each movie's title and poster.
// @Tags         swipes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   SwipeListItem
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /swipes [get]
func GetUserSwipes(c *gin.Context) {
	userID := currentUserID(c)

	var swipes []models.Swipe
	if err := database.DB.Preload("Media").
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&swipes).Error; err != nil {
		internalError(c, "Failed to fetch swipes", err)
		return
	}

	response := make([]SwipeListItem, 0, len(swipes))
	for _, s := range swipes {
		response = append(response, SwipeListItem{
			ID:        s.ID,
			MediaID:   s.MediaID,
			Liked:     s.Liked,
			Title:     s.Media.Title,
			PosterURL: s.Media.PosterURL,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
