package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"renovirt-backend/internal/models"
	"renovirt-backend/internal/services"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{models.StatusPending, models.StatusProcessing, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusProcessing, models.StatusQualityCheck, true},
		{models.StatusProcessing, models.StatusDelivered, false},
		{models.StatusQualityCheck, models.StatusCompleted, true},
		{models.StatusQualityCheck, models.StatusRevision, true},
		{models.StatusQualityCheck, models.StatusCancelled, false},
		{models.StatusRevision, models.StatusProcessing, true},
		{models.StatusCompleted, models.StatusDelivered, true},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusDelivered, models.StatusProcessing, false},
		{models.StatusCancelled, models.StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, services.CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	all := []models.OrderStatus{
		models.StatusPending, models.StatusProcessing, models.StatusQualityCheck,
		models.StatusRevision, models.StatusCompleted, models.StatusDelivered,
		models.StatusCancelled,
	}
	for _, to := range all {
		assert.False(t, services.CanTransition(models.StatusDelivered, to))
		assert.False(t, services.CanTransition(models.StatusCancelled, to))
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, models.StatusQualityCheck.Valid())
	assert.False(t, models.OrderStatus("shipped").Valid())
}
