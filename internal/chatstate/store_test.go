package chatstate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	store.Set("chat-1", State{SessionID: "sess-1", AwaitingNotes: true})

	state, ok := store.Get("chat-1")
	require.True(t, ok)
	assert.Equal(t, "sess-1", state.SessionID)
	assert.True(t, state.AwaitingNotes)
	assert.False(t, state.Timestamp.IsZero())
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	store.Set("chat-1", State{SessionID: "sess-1"})

	store.Clear("chat-1")

	_, ok := store.Get("chat-1")
	assert.False(t, ok)
}

func TestMemoryStore_ClearMissingIsNoop(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	store.Clear("nope")
}

func TestMemoryStore_ExpiresAfterTTL(t *testing.T) {
	current := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(time.Hour, func() time.Time { return current })

	store.Set("chat-1", State{SessionID: "sess-1"})

	current = current.Add(59 * time.Minute)
	_, ok := store.Get("chat-1")
	assert.True(t, ok, "entry within TTL should survive")

	current = current.Add(2 * time.Minute)
	_, ok = store.Get("chat-1")
	assert.False(t, ok, "entry past TTL should be swept")
}

func TestMemoryStore_SetRefreshesTimestamp(t *testing.T) {
	current := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(time.Hour, func() time.Time { return current })

	store.Set("chat-1", State{SessionID: "sess-1"})
	current = current.Add(50 * time.Minute)
	store.Set("chat-1", State{SessionID: "sess-1", AwaitingNotes: true})
	current = current.Add(50 * time.Minute)

	state, ok := store.Get("chat-1")
	require.True(t, ok)
	assert.True(t, state.AwaitingNotes)
}

func TestMemoryStore_SweepOnlyDropsExpired(t *testing.T) {
	current := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(time.Hour, func() time.Time { return current })

	store.Set("old", State{SessionID: "sess-old"})
	current = current.Add(45 * time.Minute)
	store.Set("fresh", State{SessionID: "sess-fresh"})
	current = current.Add(30 * time.Minute)

	_, ok := store.Get("old")
	assert.False(t, ok)
	_, ok = store.Get("fresh")
	assert.True(t, ok)
}

func TestMemoryStore_ZeroTTLUsesDefault(t *testing.T) {
	store := NewMemoryStore(0)
	assert.Equal(t, DefaultTTL, store.ttl)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Set("chat", State{SessionID: "sess"})
				store.Get("chat")
				store.Clear("chat")
			}
		}()
	}
	wg.Wait()
}
