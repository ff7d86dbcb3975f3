package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"renovirt-backend/internal/config"
	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/models"
	"renovirt-backend/internal/services"
)

type PaymentsHandler struct {
	config       *config.Config
	orderService *services.OrderService
}

func NewPaymentsHandler(cfg *config.Config, orderService *services.OrderService) *PaymentsHandler {
	return &PaymentsHandler{
		config:       cfg,
		orderService: orderService,
	}
}

// PaymentWebhookEvent is the payload the payment function posts back after a
// payment intent settles.
type PaymentWebhookEvent struct {
	Event    string `json:"event"`
	IntentID string `json:"intent_id"`
	OrderID  string `json:"order_id,omitempty"`
}

// VerifyPayment godoc
// @Summary     Verify a payment intent
// @Description Confirms the payment with the payment backend and marks the
// @Description order as paid.
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body object{intent_id=string} true "Payment intent ID"
// @Success     200 {object} models.OrderResponse
// @Failure     402 {object} models.ErrorResponse
// @Router      /payments/verify [post]
func (h *PaymentsHandler) VerifyPayment(c *gin.Context) {
	var req struct {
		IntentID string `json:"intent_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.orderService.VerifyPayment(req.IntentID)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotPaid) {
			c.JSON(http.StatusPaymentRequired, models.ErrorResponse{
				Error: "payment not confirmed",
			})
			return
		}
		logger.Log.Error("failed to verify payment",
			zap.String("intent_id", req.IntentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to verify payment",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// HandleWebhook godoc
// @Summary     Payment webhook endpoint
// @Description Receives callbacks from the payment function when an intent
// @Description settles. Uses shared-secret token verification.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Authorization header string true "Webhook token"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /webhooks/payments [post]
func (h *PaymentsHandler) HandleWebhook(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization token"})
		return
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if h.config.PaymentWebhookSecret != "" && token != h.config.PaymentWebhookSecret {
		logger.Security("payment_webhook_bad_token", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization token"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read request body",
			Message: err.Error(),
		})
		return
	}

	var event PaymentWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse event",
			Message: err.Error(),
		})
		return
	}

	if event.Event == "payment_succeeded" && event.IntentID != "" {
		if _, err := h.orderService.VerifyPayment(event.IntentID); err != nil {
			logger.Log.Warn("webhook payment verification failed",
				zap.String("intent_id", event.IntentID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
