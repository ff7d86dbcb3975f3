package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"renovirt-backend/internal/chat"
	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/supabase"
	"renovirt-backend/internal/wizard"
)

// CleanupStore is the slice of the database layer the cleanup depends on.
type CleanupStore interface {
	DeleteAbandonedOrders(olderThan time.Duration) ([]supabase.AbandonedOrder, error)
}

// OrderFileRemover removes everything stored for an order.
type OrderFileRemover interface {
	DeleteOrderFiles(userID, orderID uuid.UUID) error
}

// CleanupService expires idle wizard sessions and chat sessions and removes
// abandoned orders together with their uploaded files.
type CleanupService struct {
	dbClient  CleanupStore
	storage   OrderFileRemover
	registry  *wizard.Registry
	chatStore *chat.Store
	orderAge  time.Duration
}

func NewCleanupService(dbClient CleanupStore, storage OrderFileRemover, registry *wizard.Registry, chatStore *chat.Store, orderAge time.Duration) *CleanupService {
	return &CleanupService{
		dbClient:  dbClient,
		storage:   storage,
		registry:  registry,
		chatStore: chatStore,
		orderAge:  orderAge,
	}
}

func (s *CleanupService) RunOnce() {
	drafts := s.registry.Expire()
	chats := s.chatStore.Expire()

	removed, err := s.dbClient.DeleteAbandonedOrders(s.orderAge)
	if err != nil {
		logger.Log.Error("abandoned order cleanup failed", zap.Error(err))
	}
	for _, order := range removed {
		if err := s.storage.DeleteOrderFiles(order.UserID, order.ID); err != nil {
			logger.Log.Error("failed to delete files of abandoned order",
				zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}

	if drafts > 0 || chats > 0 || len(removed) > 0 {
		logger.Log.Info("cleanup done",
			zap.Int("drafts_expired", drafts),
			zap.Int("chat_sessions_expired", chats),
			zap.Int("orders_removed", len(removed)))
	}
}

// Run executes the cleanup on the given period until the context is cancelled.
func (s *CleanupService) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		s.RunOnce()
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
