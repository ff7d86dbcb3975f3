package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"renovirt-backend/internal/edge"
	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/models"
	"renovirt-backend/internal/supabase"
)

type ProfileHandler struct {
	dbClient   *supabase.DatabaseClient
	edgeClient *edge.Client
}

func NewProfileHandler(dbClient *supabase.DatabaseClient, edgeClient *edge.Client) *ProfileHandler {
	return &ProfileHandler{
		dbClient:   dbClient,
		edgeClient: edgeClient,
	}
}

// GetProfile godoc
// @Summary     Get the current user's profile
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "profile not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		Email:     profile.Email,
		FirstName: profile.FirstName.String,
		LastName:  profile.LastName.String,
		Company:   profile.Company.String,
		Role:      profile.Role,
		Credits:   profile.Credits,
	})
}

// GetCredits godoc
// @Summary     Get the current user's credit balance
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CreditsResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profile/credits [get]
func (h *ProfileHandler) GetCredits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	credits, err := h.dbClient.GetUserCredits(userID)
	if err != nil {
		logger.Log.Error("failed to get user credits",
			zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get credits",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.CreditsResponse{Credits: credits})
}

// GetNotifications godoc
// @Summary     List the current user's order notifications
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.NotificationListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profile/notifications [get]
func (h *ProfileHandler) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.dbClient.ListNotifications(userID)
	if err != nil {
		logger.Log.Error("failed to list notifications",
			zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list notifications",
			Message: err.Error(),
		})
		return
	}

	resp := models.NotificationListResponse{Notifications: make([]models.NotificationResponse, 0, len(notifications))}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, models.NotificationResponse{
			ID:        n.ID.String(),
			OrderID:   n.OrderID.String(),
			Status:    string(n.Status),
			Note:      n.Note.String,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// RedeemReferral godoc
// @Summary     Redeem a referral code
// @Description Passes the referral code to the backend function that validates
// @Description it and books the credits. The call is retried on transient
// @Description failures before giving up.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body models.RedeemReferralRequest true "Referral code"
// @Success     200 {object} models.ReferralResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /profile/referral [post]
func (h *ProfileHandler) RedeemReferral(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.RedeemReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	var result *edge.ReferralResult
	err := h.edgeClient.RetryWithBackoff(func() error {
		var callErr error
		result, callErr = h.edgeClient.ProcessReferral(req.Code, userID.String())
		return callErr
	}, 3)
	if err != nil {
		logger.Log.Error("failed to process referral",
			zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to process referral",
			Message: err.Error(),
		})
		return
	}

	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "invalid referral code",
			Message: "the referral code is unknown or already redeemed",
		})
		return
	}

	c.JSON(http.StatusOK, models.ReferralResponse{
		Code:    result.Code,
		Valid:   result.Valid,
		Credits: result.Credits,
	})
}
