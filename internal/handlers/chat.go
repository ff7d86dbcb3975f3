package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"renovirt-backend/internal/chat"
	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/middleware"
	"renovirt-backend/internal/models"
)

type ChatHandler struct {
	store   *chat.Store
	limiter *middleware.RateLimiter
}

func NewChatHandler(store *chat.Store, limiter *middleware.RateLimiter) *ChatHandler {
	return &ChatHandler{
		store:   store,
		limiter: limiter,
	}
}

func assistantReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "price") || strings.Contains(lower, "cost"):
		return "You can see package and add-on prices on the package step of the order flow. The summary step shows your exact total before you submit."
	case strings.Contains(lower, "status"):
		return "You can follow your order's status on the orders page. We also send a notification whenever the status changes."
	case strings.Contains(lower, "credit"):
		return "Credits are applied automatically at checkout. Your current balance is shown on your profile page."
	default:
		return "Thanks for your message. Our team will get back to you shortly; for order questions, the orders page shows the latest status."
	}
}

// PostMessage godoc
// @Summary     Send a message to the chat assistant
// @Description Appends the message to the chat session and returns the updated
// @Description history. Messages over the rate limit are dropped without an
// @Description error; the history is returned unchanged.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body models.ChatMessageRequest true "Message and optional session id"
// @Success     200 {object} models.ChatMessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /chat/messages [post]
func (h *ChatHandler) PostMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if !h.limiter.Allow(userID.String()) {
		logger.Security("chat_rate_limited", zap.String("user_id", userID.String()))
		history, _ := h.store.History(req.SessionID)
		c.JSON(http.StatusOK, models.ChatMessageResponse{
			SessionID: req.SessionID,
			Messages:  history,
		})
		return
	}

	now := time.Now()
	sessionID := h.store.Append(req.SessionID, models.ChatMessage{
		Role:    "user",
		Content: req.Message,
		SentAt:  now,
	})
	h.store.Append(sessionID, models.ChatMessage{
		Role:    "assistant",
		Content: assistantReply(req.Message),
		SentAt:  now,
	})

	history, _ := h.store.History(sessionID)
	c.JSON(http.StatusOK, models.ChatMessageResponse{
		SessionID: sessionID,
		Messages:  history,
	})
}

// GetHistory godoc
// @Summary     Get the chat session history
// @Tags        chat
// @Produce     json
// @Security    Bearer
// @Param       session_id path string true "Chat session ID"
// @Success     200 {object} models.ChatMessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /chat/sessions/{session_id} [get]
func (h *ChatHandler) GetHistory(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	sessionID := c.Param("session_id")
	history, ok := h.store.History(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "chat session not found or expired"})
		return
	}

	c.JSON(http.StatusOK, models.ChatMessageResponse{
		SessionID: sessionID,
		Messages:  history,
	})
}
