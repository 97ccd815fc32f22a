package platforms

import (
	"context"
	"net/url"

	"gyb.studio/pulse/internal/platformid"
)

// fetchInstagram reads engagement counts for one media item from the
// Instagram Graph API.
func (s *Service) fetchInstagram(ctx context.Context, item ContentItem) ApiResponse {
	cfg := s.config(PlatformInstagram)
	if cfg.AccessToken == "" {
		return failure(notConfiguredError(PlatformInstagram, "access token"))
	}

	mediaID, err := platformid.Extract(item.OriginalURL, PlatformInstagram)
	if err != nil {
		return ApiResponse{Success: false, Error: "could not extract instagram media id from url"}
	}

	q := url.Values{}
	q.Set("fields", "id,media_type,like_count,comments_count")
	q.Set("access_token", cfg.AccessToken)

	body, resp, err := s.getJSON(ctx, PlatformInstagram, s.endpoints.instagram+"/"+url.PathEscape(mediaID)+"?"+q.Encode(), nil)
	if err != nil {
		return failure(err)
	}

	data, err := NormalizeInstagram(body)
	if err != nil {
		return failure(err)
	}

	return ApiResponse{Success: true, Data: data, RateLimitRemaining: rateLimitRemaining(resp)}
}
