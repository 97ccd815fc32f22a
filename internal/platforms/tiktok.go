package platforms

import (
	"context"
	"net/url"

	"gyb.studio/pulse/internal/platformid"
)

// fetchTikTok queries the TikTok open API for play/like/share/comment counts.
// TikTok reports some failures inside a 200 body; NormalizeTikTok treats that
// embedded error as authoritative.
func (s *Service) fetchTikTok(ctx context.Context, item ContentItem) ApiResponse {
	cfg := s.config(PlatformTikTok)
	if cfg.AccessToken == "" {
		return failure(notConfiguredError(PlatformTikTok, "access token"))
	}

	videoID, err := platformid.Extract(item.OriginalURL, PlatformTikTok)
	if err != nil {
		return ApiResponse{Success: false, Error: "could not extract tiktok video id from url"}
	}

	q := url.Values{}
	q.Set("access_token", cfg.AccessToken)
	q.Set("fields", `["play_count","like_count","share_count","comment_count"]`)
	q.Set("video_id", videoID)

	body, resp, err := s.getJSON(ctx, PlatformTikTok, s.endpoints.tiktok+"/video/query/?"+q.Encode(), nil)
	if err != nil {
		return failure(err)
	}

	data, err := NormalizeTikTok(body)
	if err != nil {
		return failure(err)
	}

	return ApiResponse{Success: true, Data: data, RateLimitRemaining: rateLimitRemaining(resp)}
}
