package services

import "renovirt-backend/internal/models"

// statusTransitions is the explicit transition table for admin status updates.
// Terminal states (delivered, cancelled) have no outgoing transitions; only
// the listed moves are legal.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:      {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing:   {models.StatusQualityCheck, models.StatusCancelled},
	models.StatusQualityCheck: {models.StatusCompleted, models.StatusRevision},
	models.StatusRevision:     {models.StatusProcessing, models.StatusCancelled},
	models.StatusCompleted:    {models.StatusDelivered},
	models.StatusDelivered:    {},
	models.StatusCancelled:    {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
