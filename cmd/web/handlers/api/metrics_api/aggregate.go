package metrics_api

import (
	"github.com/labstack/echo/v4"
	"gyb.studio/pulse/internal/platforms"
)

// HandleAggregate serves POST /api/metrics/aggregate.
//
// The body is the full content list; the response sums YouTube metrics over
// every item that lists YouTube as a platform. Items whose fetch fails still
// count toward the video total.
func HandleAggregate(svc *platforms.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var items []platforms.ContentItem
		if err := c.Bind(&items); err != nil {
			return c.JSON(400, map[string]string{"error": "invalid request body"})
		}

		aggregated := svc.FetchAggregatedData(c.Request().Context(), items)
		return c.JSON(200, aggregated)
	}
}
