package chat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"renovirt-backend/internal/chat"
	"renovirt-backend/internal/models"
)

func TestStore_AppendCreatesSession(t *testing.T) {
	store := chat.NewStore(time.Hour)

	id := store.Append("", models.ChatMessage{Role: "user", Content: "hallo"})
	assert.NotEmpty(t, id)

	history, ok := store.History(id)
	assert.True(t, ok)
	assert.Len(t, history, 1)
	assert.Equal(t, "hallo", history[0].Content)
}

func TestStore_AppendReusesLiveSession(t *testing.T) {
	store := chat.NewStore(time.Hour)

	id := store.Append("", models.ChatMessage{Role: "user", Content: "first"})
	same := store.Append(id, models.ChatMessage{Role: "assistant", Content: "second"})
	assert.Equal(t, id, same)

	history, ok := store.History(id)
	assert.True(t, ok)
	assert.Len(t, history, 2)
}

func TestStore_UnknownSessionGetsANewOne(t *testing.T) {
	store := chat.NewStore(time.Hour)

	id := store.Append("no-such-session", models.ChatMessage{Role: "user", Content: "hi"})
	assert.NotEqual(t, "no-such-session", id)

	_, ok := store.History("no-such-session")
	assert.False(t, ok)
}

func TestStore_SessionExpiresAfterIdle(t *testing.T) {
	store := chat.NewStore(10 * time.Millisecond)

	id := store.Append("", models.ChatMessage{Role: "user", Content: "hi"})
	time.Sleep(25 * time.Millisecond)

	_, ok := store.History(id)
	assert.False(t, ok)

	// appending to the expired session starts a fresh one
	fresh := store.Append(id, models.ChatMessage{Role: "user", Content: "again"})
	assert.NotEqual(t, id, fresh)

	history, ok := store.History(fresh)
	assert.True(t, ok)
	assert.Len(t, history, 1)
}

func TestStore_ExpireDropsIdleSessions(t *testing.T) {
	store := chat.NewStore(10 * time.Millisecond)

	store.Append("", models.ChatMessage{Role: "user", Content: "a"})
	store.Append("", models.ChatMessage{Role: "user", Content: "b"})
	time.Sleep(25 * time.Millisecond)

	assert.Equal(t, 2, store.Expire())
	assert.Equal(t, 0, store.Expire())
}
