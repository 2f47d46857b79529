package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-reconciler/internal/core/cache"
	"shipment-reconciler/internal/features/tracking/domain"
)

const seenKeyPrefix = "tracking:seen:"

// RedisSeenCache remembers committed idempotency keys in the cache with a TTL.
type RedisSeenCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisSeenCache creates a new RedisSeenCache.
func NewRedisSeenCache(c cache.Cache, ttl time.Duration) *RedisSeenCache {
	return &RedisSeenCache{cache: c, ttl: ttl}
}

// Seen reports whether the key was remembered and has not expired.
func (r *RedisSeenCache) Seen(ctx context.Context, key domain.IdempotencyKey) (bool, error) {
	_, err := r.cache.Get(ctx, seenKeyPrefix+key.String())
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read seen key: %w", err)
	}
	return true, nil
}

// Remember records the key.
func (r *RedisSeenCache) Remember(ctx context.Context, key domain.IdempotencyKey) error {
	if err := r.cache.Set(ctx, seenKeyPrefix+key.String(), []byte("1"), r.ttl); err != nil {
		return fmt.Errorf("failed to remember seen key: %w", err)
	}
	return nil
}
