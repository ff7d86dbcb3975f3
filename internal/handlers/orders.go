package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"renovirt-backend/internal/models"
	"renovirt-backend/internal/supabase"
)

type OrdersHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewOrdersHandler(dbClient *supabase.DatabaseClient) *OrdersHandler {
	return &OrdersHandler{
		dbClient: dbClient,
	}
}

func orderResponse(order *models.Order) models.OrderResponse {
	return models.OrderResponse{
		ID:                 order.ID.String(),
		Status:             string(order.Status),
		PhotoType:          order.PhotoType,
		ImageCount:         order.ImageCount,
		GrossCents:         order.GrossCents,
		CreditCentsApplied: order.CreditCentsApplied,
		FinalCents:         order.FinalCents,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

// ListOrders godoc
// @Summary     List the user's orders
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OrderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.dbClient.ListOrders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list orders",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = orderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, models.OrderListResponse{Orders: responses})
}

// GetOrder godoc
// @Summary     Get order details
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.OrderResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.dbClient.GetOrder(orderID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "order not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// GetFiles godoc
// @Summary     Get order files
// @Description Returns the stored images for an order, including their storage URLs
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.FilesResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id}/files [get]
func (h *OrdersHandler) GetFiles(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	images, err := h.dbClient.GetOrderImages(orderID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get files",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.FileResponse, len(images))
	for i, img := range images {
		fileSize := int64(0)
		if img.FileSize.Valid {
			fileSize = img.FileSize.Int64
		}
		responses[i] = models.FileResponse{
			ID:          img.ID.String(),
			Filename:    img.Filename,
			StorageURL:  img.StorageURL,
			FileSize:    fileSize,
			MimeType:    img.MimeType,
			IsProcessed: img.IsProcessed,
			CreatedAt:   img.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.FilesResponse{Files: responses})
}
