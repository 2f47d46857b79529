package adapters

import (
	"context"
	"testing"
	"time"

	"shipment-reconciler/internal/core/cache"
	"shipment-reconciler/internal/features/tracking/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSeenCache(t *testing.T) {
	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	ctx := context.Background()
	seen := NewRedisSeenCache(adapter, time.Hour)
	key := domain.IdempotencyKey{Waybill: "AWB1", Status: "Delivered", StatusTime: t0}

	ok, err := seen.Seen(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, seen.Remember(ctx, key))
	assert.True(t, mr.Exists(seenKeyPrefix+key.String()))

	ok, err = seen.Seen(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Hour)

	ok, err = seen.Seen(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSeenCache_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	mr.Close()

	seen := NewRedisSeenCache(adapter, time.Hour)
	key := domain.IdempotencyKey{Waybill: "AWB1", Status: "Delivered", StatusTime: t0}

	_, err = seen.Seen(context.Background(), key)
	assert.Error(t, err)
	assert.Error(t, seen.Remember(context.Background(), key))
}
