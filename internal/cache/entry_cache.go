package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/Yunxiang777/accounts/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyList = "ledger:list"

// EntryCache caches the ledger listing in Redis. The ledger is shared,
// so a single key covers the list; every write invalidates it.
type EntryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewEntryCache returns a new EntryCache.
func NewEntryCache(rdb *redis.Client, ttl time.Duration) *EntryCache {
	return &EntryCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list or nil if miss.
func (c *EntryCache) GetList(ctx context.Context) ([]dom.Entry, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Entry
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list in cache.
func (c *EntryCache) SetList(ctx context.Context, list []dom.Entry) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// Invalidate removes the cached list (called on every write).
func (c *EntryCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyList).Err()
}
