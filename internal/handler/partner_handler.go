package handler

import (
	"errors"
	"net/http"
	"time"

	"reelmatch/backend/internal/database"
	"reelmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PartnerRequestInput defines the structure for creating a partner request.
type PartnerRequestInput struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email" example:"partner@example.com"`
}

// PartnerRespondInput defines the structure for resolving a partner request.
type PartnerRespondInput struct {
	RequestID uint   `json:"request_id" binding:"required" example:"1"`
	Status    string `json:"status" binding:"required,oneof=accepted rejected" example:"accepted"`
}

// SetPartnerInput defines the structure for linking a partner directly by ID.
type SetPartnerInput struct {
	PartnerID uint `json:"partner_id" binding:"required" example:"2"`
}

// PartnerRequestResponse defines one partner request, joined with both
// participants' emails for display.
type PartnerRequestResponse struct {
	ID             uint                 `json:"id"`
	RequesterID    uint                 `json:"requester_id"`
	RecipientID    uint                 `json:"recipient_id"`
	RequesterEmail string               `json:"requester_email"`
	RecipientEmail string               `json:"recipient_email"`
	Status         models.RequestStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func newPartnerRequestResponse(request models.PartnerRequest) PartnerRequestResponse {
	return PartnerRequestResponse{
		ID:             request.ID,
		RequesterID:    request.RequesterID,
		RecipientID:    request.RecipientID,
		RequesterEmail: request.Requester.Email,
		RecipientEmail: request.Recipient.Email,
		Status:         request.Status,
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
	}
}

// endregion

// region --- Partner Request Handlers ---

// CreatePartnerRequest godoc
// @Summary      Send a partner request
// @Description  Sends a partner request to another user, addressed by email.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PartnerRequestInput true "Recipient"
// @Success      201  {object}  PartnerRequestResponse
// @Failure      400  {object}  ErrorResponse "Self-request, active request exists, or already partners"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipient not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/partner-requests [post]
func CreatePartnerRequest(c *gin.Context) {
	requesterID := currentUserID(c)

	var input PartnerRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient email is required"})
		return
	}

	var recipient models.User
	if err := database.DB.Where("email = ?", input.RecipientEmail).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, "Failed to create partner request", err)
		return
	}

	if requesterID == recipient.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send partner request to yourself"})
		return
	}

	// An active request in either direction blocks a new one. Rejected
	// requests stay as history and do not block.
	var existing models.PartnerRequest
	err := database.DB.Where(
		"((requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)) AND status IN ?",
		requesterID, recipient.ID, recipient.ID, requesterID,
		[]models.RequestStatus{models.StatusPending, models.StatusAccepted},
	).First(&existing).Error
	if err == nil {
		if existing.Status == models.StatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A pending request already exists between these users"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "These users are already partners"})
		}
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, "Failed to create partner request", err)
		return
	}

	// Partner links can also exist via direct linking, without a request row.
	var linked int64
	if err := database.DB.Model(&models.User{}).Where(
		"(id = ? AND partner_id = ?) OR (id = ? AND partner_id = ?)",
		requesterID, recipient.ID, recipient.ID, requesterID,
	).Count(&linked).Error; err != nil {
		internalError(c, "Failed to create partner request", err)
		return
	}
	if linked > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "These users are already partners"})
		return
	}

	request := models.PartnerRequest{
		RequesterID: requesterID,
		RecipientID: recipient.ID,
		Status:      models.StatusPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		internalError(c, "Failed to create partner request", err)
		return
	}

	if err := database.DB.Preload("Requester").Preload("Recipient").First(&request, request.ID).Error; err != nil {
		internalError(c, "Failed to create partner request", err)
		return
	}

	c.JSON(http.StatusCreated, newPartnerRequestResponse(request))
}

// GetPartnerRequests godoc
// @Summary      Get all partner requests
// @Description  Returns all requests sent or received by the current user, newest first.
// @Tags         partner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PartnerRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/partner-requests [get]
func GetPartnerRequests(c *gin.Context) {
	userID := currentUserID(c)

	var requests []models.PartnerRequest
	if err := database.DB.Preload("Requester").Preload("Recipient").
		Where("requester_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		internalError(c, "Failed to get partner requests", err)
		return
	}

	response := make([]PartnerRequestResponse, 0, len(requests))
	for _, request := range requests {
		response = append(response, newPartnerRequestResponse(request))
	}
	c.JSON(http.StatusOK, response)
}

// GetPendingPartnerRequests godoc
// @Summary      Get pending received partner requests
// @Description  Returns pending requests where the current user is the recipient, newest first.
// @Tags         partner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PartnerRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/partner-requests/pending [get]
func GetPendingPartnerRequests(c *gin.Context) {
	userID := currentUserID(c)

	var requests []models.PartnerRequest
	if err := database.DB.Preload("Requester").Preload("Recipient").
		Where("recipient_id = ? AND status = ?", userID, models.StatusPending).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		internalError(c, "Failed to get pending partner requests", err)
		return
	}

	response := make([]PartnerRequestResponse, 0, len(requests))
	for _, request := range requests {
		response = append(response, newPartnerRequestResponse(request))
	}
	c.JSON(http.StatusOK, response)
}

// RespondToPartnerRequest godoc
// @Summary      Respond to a partner request
// @Description  Accepts or rejects a pending request addressed to the current user.
// @Description  Accepting links both users as partners in a single transaction.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PartnerRespondInput true "Decision"
// @Success      200  {object}  PartnerRequestResponse
// @Failure      400  {object}  ErrorResponse "Invalid status or request already processed"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found or not addressed to you"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/partner-requests/respond [post]
func RespondToPartnerRequest(c *gin.Context) {
	userID := currentUserID(c)

	var input PartnerRespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be either \"accepted\" or \"rejected\""})
		return
	}

	var request models.PartnerRequest
	err := database.DB.Where("id = ? AND recipient_id = ?", input.RequestID, userID).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Partner request not found or you are not authorized to respond to it"})
			return
		}
		internalError(c, "Failed to respond to partner request", err)
		return
	}

	if request.Status != models.StatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This request has already been processed"})
		return
	}

	status := models.RequestStatus(input.Status)

	// The status transition and both partner writes must land together;
	// a partial link (A points to B, B does not point back) is never
	// allowed to persist.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("status", status).Error; err != nil {
			return err
		}
		if status != models.StatusAccepted {
			return nil
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("partner_id", request.RequesterID).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", request.RequesterID).
			Update("partner_id", userID).Error
	})
	if err != nil {
		internalError(c, "Failed to respond to partner request", err)
		return
	}

	if err := database.DB.Preload("Requester").Preload("Recipient").First(&request, request.ID).Error; err != nil {
		internalError(c, "Failed to respond to partner request", err)
		return
	}

	c.JSON(http.StatusOK, newPartnerRequestResponse(request))
}

// endregion

// region --- Partner Handlers ---

// SetPartner godoc
// @Summary      Set partner directly
// @Description  Links the current user and the given user as partners, overwriting any
// @Description  existing link on both sides. Legacy path kept for direct linking
// @Description  without a request.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SetPartnerInput true "Partner"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Partner not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/partner [post]
func SetPartner(c *gin.Context) {
	userID := currentUserID(c)

	var input SetPartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Partner ID is required"})
		return
	}

	var partner models.User
	if err := database.DB.First(&partner, input.PartnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
			return
		}
		internalError(c, "Failed to set partner", err)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("partner_id", partner.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", partner.ID).
			Update("partner_id", userID).Error
	})
	if err != nil {
		internalError(c, "Failed to set partner", err)
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		internalError(c, "Failed to set partner", err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// GetPartner godoc
// @Summary      Get current partner
// @Description  Returns the linked partner's profile, or null when no partner is set.
// @Tags         partner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse "Partner profile, or null"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Partner reference is stale"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/partner [get]
func GetPartner(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		internalError(c, "Failed to get partner", err)
		return
	}

	if user.PartnerID == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	var partner models.User
	if err := database.DB.First(&partner, *user.PartnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Reference is set but the pointee is gone.
			c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
			return
		}
		internalError(c, "Failed to get partner", err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(partner))
}

// RemovePartner godoc
// @Summary      Remove current partner
// @Description  Clears the partner link on both sides in a single transaction.
// @Description  Pending requests between the pair are left untouched.
// @Tags         partner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "Partner removed"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No partner set"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/partner [delete]
func RemovePartner(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		internalError(c, "Failed to remove partner", err)
		return
	}

	if user.PartnerID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No partner to remove"})
		return
	}
	partnerID := *user.PartnerID

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("partner_id", nil).Error; err != nil {
			return err
		}
		// Only clear the other side if it still points back, so a drifted
		// link elsewhere is not clobbered.
		return tx.Model(&models.User{}).Where("id = ? AND partner_id = ?", partnerID, userID).
			Update("partner_id", nil).Error
	})
	if err != nil {
		internalError(c, "Failed to remove partner", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partner removed"})
}

// SearchUserByEmail godoc
// @Summary      Search for a user by email
// @Description  Finds a user by exact email match.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email query     string  true  "Email to search for"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/search [get]
func SearchUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, "Failed to search for user", err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// endregion
