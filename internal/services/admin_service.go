package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/models"
	"renovirt-backend/internal/supabase"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// AdminService owns the back-office order operations.
type AdminService struct {
	dbClient       *supabase.DatabaseClient
	realtimeClient *supabase.RealtimeClient
}

func NewAdminService(dbClient *supabase.DatabaseClient, realtimeClient *supabase.RealtimeClient) *AdminService {
	return &AdminService{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
	}
}

func (s *AdminService) ListOrders(status models.OrderStatus, search string) ([]models.AdminOrder, error) {
	if status != "" && !status.Valid() {
		return nil, ErrUnknownStatus
	}
	return s.dbClient.AdminListOrders(status, search)
}

// UpdateStatus moves an order to the target status, appends the moderation
// note, writes a customer-facing notification, and publishes the change on the
// realtime feed. Transitions outside the table are rejected.
func (s *AdminService) UpdateStatus(orderID uuid.UUID, target models.OrderStatus, note string) (*models.Order, error) {
	if !target.Valid() {
		return nil, ErrUnknownStatus
	}

	order, err := s.dbClient.GetOrderAny(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if !CanTransition(order.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}

	if err := s.dbClient.UpdateOrderStatus(orderID, target); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	notification := &models.OrderNotification{
		ID:      uuid.New(),
		OrderID: orderID,
		UserID:  order.UserID,
		Status:  target,
	}
	if note != "" {
		notification.Note = sql.NullString{String: note, Valid: true}
	}
	if err := s.dbClient.CreateNotification(notification); err != nil {
		// The status change already landed; a lost notification is logged, not
		// rolled back.
		logger.Log.Error("failed to create status notification",
			zap.String("order_id", orderID.String()), zap.Error(err))
	} else {
		s.realtimeClient.PublishUserEvent(order.UserID, "order_notification",
			supabase.NotificationPayload(notification))
	}

	s.realtimeClient.PublishOrderEvent(orderID, "status_changed",
		supabase.StatusChangedPayload(orderID, order.Status, target, note))

	updated, err := s.dbClient.GetOrderAny(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	return updated, nil
}
