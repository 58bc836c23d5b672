package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/saboresapp/sabores-backend/pkg/redis"
)

const snapshotCacheKey = "catalog:snapshot"

// snapshotCache stores the serialized catalog payload in redis so several
// instances can share one load per TTL window. A cache failure is never
// fatal; the service falls back to the database.
type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newSnapshotCache(client *redis.Client, ttl time.Duration) *snapshotCache {
	return &snapshotCache{client: client, ttl: ttl}
}

func (c *snapshotCache) get(ctx context.Context) (payload, bool, error) {
	raw, err := c.client.Get(ctx, c.client.Key(snapshotCacheKey))
	if errors.Is(err, redis.ErrMiss) {
		return payload{}, false, nil
	}
	if err != nil {
		return payload{}, false, err
	}
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return payload{}, false, err
	}
	return p, true, nil
}

func (c *snapshotCache) put(ctx context.Context, p payload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.client.Key(snapshotCacheKey), raw, c.ttl)
}
