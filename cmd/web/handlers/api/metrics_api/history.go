package metrics_api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"gyb.studio/pulse/internal/db"
	"gyb.studio/pulse/internal/platforms"
	"gyb.studio/pulse/pkg/utils/format"
)

type snapshotResponse struct {
	Platform               string    `json:"platform"`
	PlatformDisplayName    string    `json:"platformDisplayName"`
	Views                  int64     `json:"views"`
	ViewsDisplay           string    `json:"viewsDisplay"`
	Likes                  int64     `json:"likes"`
	Shares                 int64     `json:"shares"`
	Comments               int64     `json:"comments"`
	Duration               string    `json:"duration,omitempty"`
	DurationDisplay        string    `json:"durationDisplay,omitempty"`
	SubscriberCount        int64     `json:"subscriberCount"`
	SubscriberCountDisplay string    `json:"subscriberCountDisplay"`
	Followers              int64     `json:"followers"`
	FollowersDisplay       string    `json:"followersDisplay"`
	TrackCount             int64     `json:"trackCount"`
	FetchedAt              time.Time `json:"fetchedAt"`
}

func toSnapshotResponse(s *db.MetricSnapshot) snapshotResponse {
	row := snapshotResponse{
		Platform:               s.Platform,
		PlatformDisplayName:    platforms.DisplayName(s.Platform),
		Views:                  s.Views,
		ViewsDisplay:           format.Count(s.Views),
		Likes:                  s.Likes,
		Shares:                 s.Shares,
		Comments:               s.Comments,
		Duration:               s.Duration,
		SubscriberCount:        s.SubscriberCount,
		SubscriberCountDisplay: format.CompactCount(s.SubscriberCount),
		Followers:              s.Followers,
		FollowersDisplay:       format.CompactCount(s.Followers),
		TrackCount:             s.TrackCount,
	}
	if s.Duration != "" {
		row.DurationDisplay = format.Clock(platforms.ParseDurationToSeconds(s.Duration))
	}
	if t := db.NilTimePtr(s.FetchedAt); t != nil {
		row.FetchedAt = *t
	}
	return row
}

// HandleHistory serves GET /api/metrics/history/:platform?url=...&limit=N,
// returning stored snapshots for one piece of content, newest first.
// `latest=true` returns only the most recent snapshot, as a single object.
func HandleHistory(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		platform := strings.ToLower(strings.TrimSpace(c.Param("platform")))
		rawURL := c.QueryParam("url")
		if rawURL == "" {
			return c.JSON(400, map[string]string{"error": "url query parameter is required"})
		}

		contentID, ok := contentKey(platform, rawURL)
		if !ok {
			return c.JSON(400, map[string]string{"error": "could not extract a content identifier from url"})
		}

		ctx := c.Request().Context()

		if c.QueryParam("latest") == "true" {
			snapshot, err := dbc.LatestMetricSnapshot(ctx, contentID, platform)
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(404, map[string]string{"error": "no snapshots stored for this content"})
			}
			if err != nil {
				return c.JSON(500, map[string]string{"error": "failed to load metric history"})
			}
			return c.JSON(200, toSnapshotResponse(snapshot))
		}

		limit := 0
		if raw := c.QueryParam("limit"); raw != "" {
			limit, _ = strconv.Atoi(raw)
		}

		snapshots, err := dbc.ListMetricSnapshots(ctx, contentID, platform, limit)
		if err != nil {
			return c.JSON(500, map[string]string{"error": "failed to load metric history"})
		}

		response := make([]snapshotResponse, len(snapshots))
		for i, s := range snapshots {
			response[i] = toSnapshotResponse(s)
		}

		return c.JSON(200, response)
	}
}
