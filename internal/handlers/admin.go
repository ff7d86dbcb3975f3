package handlers

import (
	"archive/zip"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/models"
	"renovirt-backend/internal/services"
	"renovirt-backend/internal/supabase"
)

type AdminHandler struct {
	adminService  *services.AdminService
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewAdminHandler(adminService *services.AdminService, dbClient *supabase.DatabaseClient, storageClient *supabase.StorageClient) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

func adminOrderResponse(order *models.AdminOrder) models.AdminOrderResponse {
	resp := models.AdminOrderResponse{
		OrderResponse: orderResponse(&order.Order),
		CustomerEmail: order.CustomerEmail,
	}
	name := strings.TrimSpace(order.FirstName.String + " " + order.LastName.String)
	if name != "" {
		resp.CustomerName = name
	}
	if order.CustomerCompany.Valid {
		resp.Company = order.CustomerCompany.String
	}
	if order.ObjectReference.Valid {
		resp.ObjectReference = order.ObjectReference.String
	}
	if order.SpecialRequests.Valid {
		resp.SpecialRequests = order.SpecialRequests.String
	}
	return resp
}

// ListOrders godoc
// @Summary     List all orders for the back office
// @Description Lists orders across all customers, optionally filtered by
// @Description status and by a free-text search over customer details.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       status query string false "Filter by order status"
// @Param       search query string false "Search by customer email, name, or company"
// @Success     200 {object} models.AdminOrderListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	search := c.Query("search")

	orders, err := h.adminService.ListOrders(status, search)
	if err != nil {
		if errors.Is(err, services.ErrUnknownStatus) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "unknown status",
				Message: fmt.Sprintf("status %q is not a known order status", status),
			})
			return
		}
		logger.Log.Error("failed to list admin orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list orders",
			Message: err.Error(),
		})
		return
	}

	resp := models.AdminOrderListResponse{Orders: make([]models.AdminOrderResponse, 0, len(orders))}
	for i := range orders {
		resp.Orders = append(resp.Orders, adminOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary     Update an order's status
// @Description Moves an order to a new status. Only transitions allowed by the
// @Description order lifecycle are accepted; an optional note is stored with
// @Description the customer notification.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id   path  string                     true "Order ID"
// @Param       body body  models.UpdateStatusRequest true "Target status and note"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order ID"})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.adminService.UpdateStatus(orderID, models.OrderStatus(req.Status), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "unknown status",
				Message: fmt.Sprintf("status %q is not a known order status", req.Status),
			})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "invalid status transition",
				Message: err.Error(),
			})
		case errors.Is(err, supabase.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		default:
			logger.Log.Error("failed to update order status",
				zap.String("order_id", orderID.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to update status",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// DownloadArchive godoc
// @Summary     Download an order's images as a zip archive
// @Description Streams all of the order's images in a single zip file. Files
// @Description are fetched from storage one at a time.
// @Tags        admin
// @Produce     application/zip
// @Security    Bearer
// @Param       id path string true "Order ID"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders/{id}/archive [get]
func (h *AdminHandler) DownloadArchive(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order ID"})
		return
	}

	order, err := h.dbClient.GetOrderAny(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		return
	}

	images, err := h.dbClient.GetOrderImages(order.ID, order.UserID)
	if err != nil {
		logger.Log.Error("failed to load order images",
			zap.String("order_id", orderID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load order images",
			Message: err.Error(),
		})
		return
	}
	if len(images) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order has no images"})
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="order-%s.zip"`, orderID))
	c.Status(http.StatusOK)

	zw := zip.NewWriter(c.Writer)
	defer zw.Close()

	for _, img := range images {
		data, err := h.storageClient.DownloadFile(img.StoragePath)
		if err != nil {
			// Headers are already sent, so skip the file and keep the
			// rest of the archive usable.
			logger.Log.Warn("failed to download image for archive",
				zap.String("order_id", orderID.String()),
				zap.String("storage_path", img.StoragePath),
				zap.Error(err))
			continue
		}

		w, err := zw.Create(img.Filename)
		if err != nil {
			logger.Log.Error("failed to add file to archive",
				zap.String("filename", img.Filename), zap.Error(err))
			return
		}
		if _, err := w.Write(data); err != nil {
			logger.Log.Error("failed to write file to archive",
				zap.String("filename", img.Filename), zap.Error(err))
			return
		}
	}
}
