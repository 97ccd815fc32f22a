package metrics_api

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"gyb.studio/pulse/internal/db"
	"gyb.studio/pulse/internal/metricscache"
	"gyb.studio/pulse/internal/platforms"
)

// HandleFetchPlatform serves GET /api/metrics/:platform?url=...
//
// Cache reads happen before any upstream call; a hit costs no quota.
// `refresh=true` drops the cached entry and forces an upstream fetch. A
// successful fetch is written back to the cache and appended to the snapshot
// history. Failures come back as success=false with HTTP 200 so the client
// can always decode the same envelope.
func HandleFetchPlatform(svc *platforms.Service, cache *metricscache.Cache, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		platform := strings.ToLower(strings.TrimSpace(c.Param("platform")))
		rawURL := c.QueryParam("url")
		if rawURL == "" {
			return c.JSON(400, platforms.ApiResponse{
				Success: false,
				Error:   "url query parameter is required",
			})
		}

		ctx := c.Request().Context()
		contentID, haveKey := contentKey(platform, rawURL)
		refresh := c.QueryParam("refresh") == "true"

		if haveKey && refresh {
			if err := cache.Invalidate(ctx, contentID, platform); err != nil {
				slog.Warn("metrics cache invalidate failed", "platform", platform, "error", err)
			}
		}

		if haveKey && !refresh {
			if cached, err := cache.Get(ctx, contentID, platform); err == nil {
				return c.JSON(200, platforms.ApiResponse{Success: true, Data: cached})
			} else if err != metricscache.ErrCacheMiss {
				slog.Warn("metrics cache read failed", "platform", platform, "error", err)
			}
		}

		resp := svc.FetchPlatformViews(ctx, platforms.ContentItem{OriginalURL: rawURL}, platform)

		if resp.Success && resp.Data != nil && haveKey {
			if err := cache.Set(ctx, contentID, *resp.Data); err != nil {
				slog.Warn("metrics cache write failed", "platform", platform, "error", err)
			}
			if err := dbc.InsertMetricSnapshot(ctx, contentID, *resp.Data); err != nil {
				slog.Warn("metric snapshot insert failed", "platform", platform, "error", err)
			}
		}

		return c.JSON(200, resp)
	}
}
