package platforms

import (
	"context"
	"log/slog"
	"net/url"

	"gyb.studio/pulse/internal/platformid"
)

// fetchYouTube calls the YouTube Data API v3 /videos endpoint for statistics,
// contentDetails and snippet, then enriches the record with the channel's
// subscriber count via a second /channels call. The channel fetch is
// best-effort: its failure degrades SubscriberCount to 0 without failing the
// video fetch.
func (s *Service) fetchYouTube(ctx context.Context, item ContentItem) ApiResponse {
	cfg := s.config(PlatformYouTube)
	if cfg.APIKey == "" {
		return failure(notConfiguredError(PlatformYouTube, "api key"))
	}

	videoID, err := platformid.Extract(item.OriginalURL, PlatformYouTube)
	if err != nil {
		return ApiResponse{Success: false, Error: "could not extract youtube video id from url"}
	}

	q := url.Values{}
	q.Set("part", "statistics,contentDetails,snippet")
	q.Set("id", videoID)
	q.Set("key", cfg.APIKey)

	body, resp, err := s.getJSON(ctx, PlatformYouTube, s.endpoints.youtube+"/videos?"+q.Encode(), nil)
	if err != nil {
		return failure(err)
	}

	data, channelID, err := NormalizeYouTubeVideo(body)
	if err != nil {
		return failure(err)
	}

	data.SubscriberCount = s.fetchYouTubeSubscribers(ctx, cfg.APIKey, channelID)

	return ApiResponse{
		Success:            true,
		Data:               data,
		RateLimitRemaining: rateLimitRemaining(resp),
	}
}

func (s *Service) fetchYouTubeSubscribers(ctx context.Context, apiKey string, channelID string) int64 {
	if channelID == "" {
		return 0
	}

	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", channelID)
	q.Set("key", apiKey)

	body, _, err := s.getJSON(ctx, PlatformYouTube, s.endpoints.youtube+"/channels?"+q.Encode(), nil)
	if err != nil {
		slog.Warn("could not fetch youtube channel statistics", "channel_id", channelID, "error", err)
		return 0
	}
	return ParseYouTubeSubscriberCount(body)
}
