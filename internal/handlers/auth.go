package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"renovirt-backend/internal/config"
	"renovirt-backend/internal/edge"
	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/middleware"
	"renovirt-backend/internal/models"
)

const sessionMaxAge = 7 * 24 * 60 * 60

type AuthHandler struct {
	config     *config.Config
	edgeClient *edge.Client
}

func NewAuthHandler(cfg *config.Config, edgeClient *edge.Client) *AuthHandler {
	return &AuthHandler{
		config:     cfg,
		edgeClient: edgeClient,
	}
}

// CreateSession godoc
// @Summary     Establish a browser session
// @Description Validates the access token and stores it in the session cookie
// @Description used by the page routes.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body object{access_token=string} true "Supabase access token"
// @Success     200 {object} map[string]string "status"
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/session [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req struct {
		AccessToken string `json:"access_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	userID, err := middleware.ParseUserID(h.config, req.AccessToken)
	if err != nil {
		logger.Security("session_token_rejected", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid access token"})
		return
	}

	secure := strings.HasPrefix(h.config.BaseURL, "https://")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, req.AccessToken, sessionMaxAge, "/", "", secure, true)

	c.JSON(http.StatusOK, gin.H{"status": "ok", "user_id": userID})
}

// DestroySession godoc
// @Summary     End the browser session
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]string "status"
// @Router      /auth/session [delete]
func (h *AuthHandler) DestroySession(c *gin.Context) {
	secure := strings.HasPrefix(h.config.BaseURL, "https://")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequestPasswordReset godoc
// @Summary     Request a password reset email
// @Description Triggers the backend reset function. Always answers 200 so the
// @Description endpoint does not reveal which emails exist.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body models.PasswordResetRequest true "Account email"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Router      /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.edgeClient.TriggerPasswordReset(req.Email); err != nil {
		logger.Log.Warn("password reset trigger failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
