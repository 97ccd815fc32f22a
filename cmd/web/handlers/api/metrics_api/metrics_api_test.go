package metrics_api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gyb.studio/pulse/internal/db"
	"gyb.studio/pulse/internal/metricscache"
	"gyb.studio/pulse/internal/platforms"
)

func TestContentKey(t *testing.T) {
	id1, ok := contentKey("youtube", "https://youtu.be/abc12345678")
	require.True(t, ok)

	id2, ok := contentKey("youtube", "https://www.youtube.com/watch?v=abc12345678")
	require.True(t, ok)

	// Same video through different URL shapes gets the same identity.
	require.Equal(t, id1, id2)

	_, ok = contentKey("youtube", "https://example.com/nothing-here")
	require.False(t, ok)
}

func TestHandleFetchPlatformRequiresURL(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/api/metrics/youtube", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("platform")
	c.SetParamValues("youtube")

	svc := platforms.NewService(nil)
	err := HandleFetchPlatform(svc, nil, nil)(c)
	require.NoError(t, err)
	require.Equal(t, 400, rec.Code)

	var resp platforms.ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Contains(t, resp.Error, "url")
}

func newTestCache(t *testing.T) *metricscache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return metricscache.New(client, time.Minute)
}

func TestHandleFetchPlatformRefreshBypassesCache(t *testing.T) {
	e := echo.New()
	cache := newTestCache(t)
	svc := platforms.NewService(nil) // nothing configured: any real fetch fails

	const rawURL = "https://youtu.be/abc12345678"
	contentID, ok := contentKey("youtube", rawURL)
	require.True(t, ok)
	require.NoError(t, cache.Set(context.Background(), contentID, platforms.PlatformViewData{
		Platform: "youtube",
		Views:    42,
	}))

	get := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("platform")
		c.SetParamValues("youtube")
		require.NoError(t, HandleFetchPlatform(svc, cache, nil)(c))
		return rec
	}

	// Cached entry answers without touching the (unconfigured) upstream.
	rec := get("/api/metrics/youtube?url=" + rawURL)
	var resp platforms.ApiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.EqualValues(t, 42, resp.Data.Views)

	// refresh=true drops the entry and forces the upstream path.
	rec = get("/api/metrics/youtube?url=" + rawURL + "&refresh=true")
	resp = platforms.ApiResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Contains(t, resp.Error, "not configured")

	_, err := cache.Get(context.Background(), contentID, "youtube")
	require.ErrorIs(t, err, metricscache.ErrCacheMiss)
}

func TestSnapshotResponseDisplayFields(t *testing.T) {
	fetched := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	row := toSnapshotResponse(&db.MetricSnapshot{
		Platform:        "youtube",
		Views:           1234567,
		Likes:           10,
		Comments:        2,
		Duration:        "PT1M30S",
		SubscriberCount: 54321,
		Followers:       1500,
		FetchedAt:       pgtype.Timestamptz{Time: fetched, Valid: true},
	})

	require.Equal(t, "YouTube", row.PlatformDisplayName)
	require.Equal(t, "1,234,567", row.ViewsDisplay)
	require.Equal(t, "54.3K", row.SubscriberCountDisplay)
	require.Equal(t, "1.5K", row.FollowersDisplay)
	require.Equal(t, "1:30", row.DurationDisplay)
	require.Equal(t, fetched, row.FetchedAt)
}

func TestHandleFetchItemValidation(t *testing.T) {
	e := echo.New()
	svc := platforms.NewService(nil)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/metrics/item", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, HandleFetchItem(svc, nil, nil)(c))
		return rec
	}

	require.Equal(t, 400, post(`not json`).Code)
	require.Equal(t, 400, post(`{"platforms":["youtube"]}`).Code)
	require.Equal(t, 400, post(`{"originalUrl":"https://youtu.be/abc12345678"}`).Code)
}

func TestHandleAggregateEmptyList(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("POST", "/api/metrics/aggregate", strings.NewReader(`[]`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	svc := platforms.NewService(nil)
	require.NoError(t, HandleAggregate(svc)(c))
	require.Equal(t, 200, rec.Code)

	var agg platforms.AggregatedPlatformData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &agg))
	require.Equal(t, 0, agg.TotalVideos)
	require.Equal(t, "PT0S", agg.TotalDuration)
}

func TestHandlePlatforms(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/api/metrics/platforms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	svc := platforms.NewService(map[string]platforms.PlatformConfig{
		"youtube": {APIKey: "key"},
		"tiktok":  {AccessToken: "token"},
	})
	require.NoError(t, HandlePlatforms(svc)(c))
	require.Equal(t, 200, rec.Code)

	var infos []platformInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 2)
	require.Equal(t, "tiktok", infos[0].Name)
	require.Equal(t, "TikTok", infos[0].DisplayName)
	require.Equal(t, "youtube", infos[1].Name)
	require.Equal(t, "YouTube", infos[1].DisplayName)
}
