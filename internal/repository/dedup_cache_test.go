package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

func newTestCache(t *testing.T, window time.Duration) (*miniredis.Miniredis, *DedupCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewDedupCache(client, window)
}

func TestDedupCacheMarkAndSeen(t *testing.T) {
	_, cache := newTestCache(t, time.Hour)
	ctx := context.Background()

	seen, err := cache.Seen(ctx, "t-1", domain.AlertKindWarning)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, cache.Mark(ctx, "t-1", domain.AlertKindWarning))

	seen, err = cache.Seen(ctx, "t-1", domain.AlertKindWarning)
	require.NoError(t, err)
	assert.True(t, seen)

	// A different kind for the same ticket is a distinct key.
	seen, err = cache.Seen(ctx, "t-1", domain.AlertKindCritical)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestDedupCacheExpiresWithWindow(t *testing.T) {
	mr, cache := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Mark(ctx, "t-1", domain.AlertKindBreach))
	mr.FastForward(2 * time.Hour)

	seen, err := cache.Seen(ctx, "t-1", domain.AlertKindBreach)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestDedupCacheNilClientIsDisabled(t *testing.T) {
	cache := NewDedupCache(nil, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Mark(ctx, "t-1", domain.AlertKindWarning))
	seen, err := cache.Seen(ctx, "t-1", domain.AlertKindWarning)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestDedupCacheSurfacesBackendErrors(t *testing.T) {
	mr, cache := newTestCache(t, time.Hour)
	mr.Close()
	ctx := context.Background()

	_, err := cache.Seen(ctx, "t-1", domain.AlertKindWarning)
	assert.Error(t, err)
}
