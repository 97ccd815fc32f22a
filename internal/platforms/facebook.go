package platforms

import (
	"context"
	"net/url"

	"gyb.studio/pulse/internal/platformid"
)

// fetchFacebook reads post impressions and total reactions from the Facebook
// Graph API insights edge. The access token comes from configuration like
// every other platform credential.
func (s *Service) fetchFacebook(ctx context.Context, item ContentItem) ApiResponse {
	cfg := s.config(PlatformFacebook)
	if cfg.AccessToken == "" {
		return failure(notConfiguredError(PlatformFacebook, "access token"))
	}

	postID, err := platformid.Extract(item.OriginalURL, PlatformFacebook)
	if err != nil {
		return ApiResponse{Success: false, Error: "could not extract facebook post id from url"}
	}

	q := url.Values{}
	q.Set("fields", "insights.metric(post_impressions,post_reactions_by_type_total)")
	q.Set("access_token", cfg.AccessToken)

	body, resp, err := s.getJSON(ctx, PlatformFacebook, s.endpoints.facebook+"/"+url.PathEscape(postID)+"?"+q.Encode(), nil)
	if err != nil {
		return failure(err)
	}

	data, err := NormalizeFacebook(body)
	if err != nil {
		return failure(err)
	}

	return ApiResponse{Success: true, Data: data, RateLimitRemaining: rateLimitRemaining(resp)}
}
