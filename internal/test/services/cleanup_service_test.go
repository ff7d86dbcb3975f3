package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"renovirt-backend/internal/chat"
	"renovirt-backend/internal/services"
	"renovirt-backend/internal/supabase"
	"renovirt-backend/internal/wizard"
)

type fakeCleanupStore struct {
	removed  []supabase.AbandonedOrder
	err      error
	gotAge   time.Duration
	runCount int
}

func (f *fakeCleanupStore) DeleteAbandonedOrders(olderThan time.Duration) ([]supabase.AbandonedOrder, error) {
	f.runCount++
	f.gotAge = olderThan
	return f.removed, f.err
}

type fakeFileRemover struct {
	calls []supabase.AbandonedOrder
	err   error
}

func (f *fakeFileRemover) DeleteOrderFiles(userID, orderID uuid.UUID) error {
	f.calls = append(f.calls, supabase.AbandonedOrder{ID: orderID, UserID: userID})
	return f.err
}

func TestCleanupService_RemovesFilesOfAbandonedOrders(t *testing.T) {
	removed := []supabase.AbandonedOrder{
		{ID: uuid.New(), UserID: uuid.New()},
		{ID: uuid.New(), UserID: uuid.New()},
	}
	store := &fakeCleanupStore{removed: removed}
	remover := &fakeFileRemover{}
	svc := services.NewCleanupService(store, remover,
		wizard.NewRegistry(time.Hour), chat.NewStore(time.Hour), 24*time.Hour)

	svc.RunOnce()

	assert.Equal(t, 24*time.Hour, store.gotAge)
	assert.Equal(t, removed, remover.calls)
}

func TestCleanupService_StoreErrorSkipsFileRemoval(t *testing.T) {
	store := &fakeCleanupStore{err: errors.New("connection refused")}
	remover := &fakeFileRemover{}
	svc := services.NewCleanupService(store, remover,
		wizard.NewRegistry(time.Hour), chat.NewStore(time.Hour), 24*time.Hour)

	svc.RunOnce()

	assert.Empty(t, remover.calls)
}

func TestCleanupService_FileRemovalErrorDoesNotStopTheRun(t *testing.T) {
	store := &fakeCleanupStore{removed: []supabase.AbandonedOrder{{ID: uuid.New(), UserID: uuid.New()}}}
	remover := &fakeFileRemover{err: errors.New("bucket unavailable")}
	svc := services.NewCleanupService(store, remover,
		wizard.NewRegistry(time.Hour), chat.NewStore(time.Hour), 24*time.Hour)

	svc.RunOnce()

	assert.Len(t, remover.calls, 1)
	assert.Equal(t, 1, store.runCount)
}
