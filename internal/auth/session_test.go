package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, time.Hour), mr
}

func TestSessionLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ident := Identity{UserID: 7, Username: "alice1"}
	id, err := store.Create(ctx, ident)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, ok := store.Get(ctx, id)
	require.True(t, ok)
	assert.Equal(t, ident, got)

	require.NoError(t, store.Delete(ctx, id))
	_, ok = store.Get(ctx, id)
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, Identity{UserID: 1, Username: "bob"})
	require.NoError(t, err)

	mr.FastForward(time.Hour + time.Second)

	_, ok := store.Get(ctx, id)
	assert.False(t, ok, "session should expire silently after its TTL")
}

func TestSessionUnknownID(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok := store.Get(context.Background(), "deadbeef")
	assert.False(t, ok)
}

func TestSessionIDsAreUnique(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := store.Create(ctx, Identity{UserID: int64(i)})
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
}
