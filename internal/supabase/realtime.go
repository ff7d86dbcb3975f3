package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"renovirt-backend/internal/models"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

// PublishEvent is intentionally thin: writes to the orders, order_notifications
// and customer_profiles tables already flow through Supabase's change feed, so
// subscribers re-fetch on any matching change. Consumers must treat displayed
// data as eventually consistent; no ordering is guaranteed between the change
// event and the re-fetch completing.
func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	return nil
}

func (r *RealtimeClient) PublishOrderEvent(orderID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("order:%s", orderID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishUserEvent(userID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("user:%s", userID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func OrderSubmittedPayload(orderID uuid.UUID, finalCents int64) map[string]interface{} {
	return map[string]interface{}{
		"order_id":    orderID.String(),
		"status":      string(models.StatusPending),
		"final_cents": finalCents,
	}
}

func StatusChangedPayload(orderID uuid.UUID, from, to models.OrderStatus, note string) map[string]interface{} {
	payload := map[string]interface{}{
		"order_id": orderID.String(),
		"from":     string(from),
		"status":   string(to),
	}
	if note != "" {
		payload["note"] = note
	}
	return payload
}

func UploadStartedPayload(userID uuid.UUID, fileCount int) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    userID.String(),
		"status":     "uploading",
		"file_count": fileCount,
	}
}

func UploadCompletedPayload(userID uuid.UUID, fileCount int) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    userID.String(),
		"status":     "uploaded",
		"file_count": fileCount,
	}
}

func NotificationPayload(n *models.OrderNotification) map[string]interface{} {
	payload := map[string]interface{}{
		"order_id": n.OrderID.String(),
		"status":   string(n.Status),
	}
	if n.Note.Valid {
		payload["note"] = n.Note.String
	}
	return payload
}
