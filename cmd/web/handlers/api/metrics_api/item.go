package metrics_api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"gyb.studio/pulse/internal/db"
	"gyb.studio/pulse/internal/metricscache"
	"gyb.studio/pulse/internal/platforms"
)

// HandleFetchItem serves POST /api/metrics/item.
//
// The body is one content item with its declared platform list; the response
// is one row per platform, failed platforms included with their error inline.
func HandleFetchItem(svc *platforms.Service, cache *metricscache.Cache, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var item platforms.ContentItem
		if err := c.Bind(&item); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request body"})
		}
		if item.OriginalURL == "" {
			return c.JSON(400, map[string]string{"error": "originalUrl is required"})
		}
		if len(item.Platforms) == 0 {
			return c.JSON(400, map[string]string{"error": "platforms list is required"})
		}

		ctx := c.Request().Context()
		results := svc.FetchAllPlatformViews(ctx, item)

		for _, row := range results {
			if row.Error != "" {
				continue
			}
			contentID, ok := contentKey(row.Platform, item.OriginalURL)
			if !ok {
				continue
			}
			if err := cache.Set(ctx, contentID, row); err != nil {
				slog.Warn("metrics cache write failed", "platform", row.Platform, "error", err)
			}
			if err := dbc.InsertMetricSnapshot(ctx, contentID, row); err != nil {
				slog.Warn("metric snapshot insert failed", "platform", row.Platform, "error", err)
			}
		}

		return c.JSON(200, results)
	}
}
