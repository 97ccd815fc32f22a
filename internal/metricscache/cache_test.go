package metricscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"gyb.studio/pulse/internal/platformid"
	"gyb.studio/pulse/internal/platforms"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, ttl), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	contentID := platformid.ContentUUID("youtube.com", "dQw4w9WgXcQ")
	record := platforms.PlatformViewData{
		Platform:    platforms.PlatformYouTube,
		Views:       100,
		Likes:       10,
		Duration:    "PT1M30S",
		LastUpdated: "2026-08-30T00:00:00Z",
	}

	require.NoError(t, cache.Set(ctx, contentID, record))

	got, err := cache.Get(ctx, contentID, platforms.PlatformYouTube)
	require.NoError(t, err)
	require.Equal(t, record, *got)
}

func TestCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	_, err := cache.Get(context.Background(), platformid.ContentUUID("youtube.com", "missing"), "youtube")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	contentID := platformid.ContentUUID("tiktok.com", "7123456789012345678")
	require.NoError(t, cache.Set(ctx, contentID, platforms.PlatformViewData{
		Platform: platforms.PlatformTikTok,
		Views:    1500,
	}))

	mr.FastForward(time.Minute)

	_, err := cache.Get(ctx, contentID, platforms.PlatformTikTok)
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_FailureRecordsNotCached(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	contentID := platformid.ContentUUID("youtube.com", "dQw4w9WgXcQ")
	require.NoError(t, cache.Set(ctx, contentID, platforms.PlatformViewData{
		Platform: platforms.PlatformYouTube,
		Error:    "quota exceeded",
	}))

	_, err := cache.Get(ctx, contentID, platforms.PlatformYouTube)
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	contentID := platformid.ContentUUID("pinterest.com", "123")
	require.NoError(t, cache.Set(ctx, contentID, platforms.PlatformViewData{
		Platform: platforms.PlatformPinterest,
		Shares:   7,
	}))

	require.NoError(t, cache.Invalidate(ctx, contentID, platforms.PlatformPinterest))

	_, err := cache.Get(ctx, contentID, platforms.PlatformPinterest)
	require.ErrorIs(t, err, ErrCacheMiss)
}
