package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"reelmatch/backend/internal/database"
	"reelmatch/backend/internal/handler"
	"reelmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePartnerRequest(t *testing.T) {
	router := setupTestRouter(t)
	_, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	signupUser(t, router, "b@x.com", "pw123456")

	// Unknown recipient.
	w := doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "nobody@x.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Self-request.
	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "a@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid request.
	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "b@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	request := decode[handler.PartnerRequestResponse](t, w)
	assert.Equal(t, models.StatusPending, request.Status)
	assert.Equal(t, "a@x.com", request.RequesterEmail)
	assert.Equal(t, "b@x.com", request.RecipientEmail)

	// A second request while one is pending is blocked, in either direction.
	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "b@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondAcceptLinksBothSides(t *testing.T) {
	router := setupTestRouter(t)
	idA, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	idB, tokenB := signupUser(t, router, "b@x.com", "pw123456")

	linkPartners(t, router, tokenA, "b@x.com", tokenB)

	// Symmetry: GetPartner(A) = B and GetPartner(B) = A.
	w := doJSON(t, router, http.MethodGet, "/api/users/partner", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	partnerOfA := decode[handler.UserResponse](t, w)
	assert.Equal(t, idB, partnerOfA.ID)

	w = doJSON(t, router, http.MethodGet, "/api/users/partner", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	partnerOfB := decode[handler.UserResponse](t, w)
	assert.Equal(t, idA, partnerOfB.ID)

	// A new request between linked partners always conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "b@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondReject(t *testing.T) {
	router := setupTestRouter(t)
	_, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	_, tokenB := signupUser(t, router, "b@x.com", "pw123456")

	w := doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "b@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	request := decode[handler.PartnerRequestResponse](t, w)

	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests/respond", tokenB, gin.H{
		"request_id": request.ID,
		"status":     "rejected",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resolved := decode[handler.PartnerRequestResponse](t, w)
	assert.Equal(t, models.StatusRejected, resolved.Status)

	// No link was made.
	w = doJSON(t, router, http.MethodGet, "/api/users/partner", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	// Resolving again fails: already processed.
	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests/respond", tokenB, gin.H{
		"request_id": request.ID,
		"status":     "accepted",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A rejected request does not block a fresh one.
	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "b@x.com",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRespondAuthorization(t *testing.T) {
	router := setupTestRouter(t)
	_, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	signupUser(t, router, "b@x.com", "pw123456")
	_, tokenC := signupUser(t, router, "c@x.com", "pw123456")

	w := doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "b@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	request := decode[handler.PartnerRequestResponse](t, w)

	// Only the recipient may respond; the requester and third parties get 404.
	for _, token := range []string{tokenA, tokenC} {
		w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests/respond", token, gin.H{
			"request_id": request.ID,
			"status":     "accepted",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	// Invalid decision value.
	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests/respond", tokenA, gin.H{
		"request_id": request.ID,
		"status":     "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPartnerRequests(t *testing.T) {
	router := setupTestRouter(t)
	_, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	_, tokenB := signupUser(t, router, "b@x.com", "pw123456")
	_, tokenC := signupUser(t, router, "c@x.com", "pw123456")

	w := doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenA, gin.H{
		"recipient_email": "b@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/users/partner-requests", tokenC, gin.H{
		"recipient_email": "b@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// B sees both received requests; A sees only its own.
	w = doJSON(t, router, http.MethodGet, "/api/users/partner-requests", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]handler.PartnerRequestResponse](t, w), 2)

	w = doJSON(t, router, http.MethodGet, "/api/users/partner-requests", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]handler.PartnerRequestResponse](t, w), 1)

	// Pending view is recipient-only.
	w = doJSON(t, router, http.MethodGet, "/api/users/partner-requests/pending", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := decode[[]handler.PartnerRequestResponse](t, w)
	assert.Len(t, pending, 2)

	w = doJSON(t, router, http.MethodGet, "/api/users/partner-requests/pending", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]handler.PartnerRequestResponse](t, w))
}

func TestSetPartnerDirect(t *testing.T) {
	router := setupTestRouter(t)
	idA, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	idB, tokenB := signupUser(t, router, "b@x.com", "pw123456")

	// Unknown partner.
	w := doJSON(t, router, http.MethodPost, "/api/users/partner", tokenA, gin.H{
		"partner_id": 9999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/users/partner", tokenA, gin.H{
		"partner_id": idB,
	})
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[handler.UserResponse](t, w)
	require.NotNil(t, user.PartnerID)
	assert.Equal(t, idB, *user.PartnerID)

	// The write is bidirectional.
	w = doJSON(t, router, http.MethodGet, "/api/users/partner", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	partnerOfB := decode[handler.UserResponse](t, w)
	assert.Equal(t, idA, partnerOfB.ID)

	// Response never carries the password hash.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "password_hash")
	assert.NotContains(t, raw, "PasswordHash")
}

func TestGetPartnerStates(t *testing.T) {
	router := setupTestRouter(t)
	idA, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	idB, _ := signupUser(t, router, "b@x.com", "pw123456")

	// No partner set: explicit null, not an error.
	w := doJSON(t, router, http.MethodGet, "/api/users/partner", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	// Stale reference: points at a deleted user.
	require.NoError(t, database.DB.Model(&models.User{}).Where("id = ?", idA).Update("partner_id", idB).Error)
	require.NoError(t, database.DB.Delete(&models.User{}, idB).Error)

	w = doJSON(t, router, http.MethodGet, "/api/users/partner", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemovePartner(t *testing.T) {
	router := setupTestRouter(t)
	_, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	_, tokenB := signupUser(t, router, "b@x.com", "pw123456")

	// Nothing to remove yet.
	w := doJSON(t, router, http.MethodDelete, "/api/users/partner", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	linkPartners(t, router, tokenA, "b@x.com", tokenB)

	w = doJSON(t, router, http.MethodDelete, "/api/users/partner", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Both sides are cleared.
	for _, token := range []string{tokenA, tokenB} {
		w = doJSON(t, router, http.MethodGet, "/api/users/partner", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	}
}

func TestSearchUserByEmail(t *testing.T) {
	router := setupTestRouter(t)
	_, tokenA := signupUser(t, router, "a@x.com", "pw123456")
	idB, _ := signupUser(t, router, "b@x.com", "pw123456")

	w := doJSON(t, router, http.MethodGet, "/api/users/search?email=b@x.com", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[handler.UserResponse](t, w)
	assert.Equal(t, idB, user.ID)

	w = doJSON(t, router, http.MethodGet, "/api/users/search?email=nobody@x.com", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/search", tokenA, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
