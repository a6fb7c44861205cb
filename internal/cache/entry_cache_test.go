package cache

import (
	"context"
	"testing"
	"time"

	dom "github.com/Yunxiang777/accounts/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*EntryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewEntryCache(rdb, time.Minute), mr
}

func TestEntryCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	miss, err := c.GetList(ctx)
	require.NoError(t, err)
	assert.Nil(t, miss)

	list := []dom.Entry{
		{ID: 1, Description: "salary", Amount: 1000, Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Sign: dom.SignCredit},
		{ID: 2, Description: "rent", Amount: 300, Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Sign: dom.SignDebit},
	}
	require.NoError(t, c.SetList(ctx, list))

	got, err := c.GetList(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestEntryCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, []dom.Entry{{ID: 1, Amount: 5, Sign: dom.SignCredit}}))
	require.NoError(t, c.Invalidate(ctx))

	got, err := c.GetList(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "invalidated cache reads as a miss")
}

func TestEntryCacheTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, []dom.Entry{{ID: 1, Amount: 5, Sign: dom.SignCredit}}))
	mr.FastForward(2 * time.Minute)

	got, err := c.GetList(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
