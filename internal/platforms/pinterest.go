package platforms

import (
	"context"
	"net/url"

	"gyb.studio/pulse/internal/platformid"
)

// fetchPinterest reads pin details from the Pinterest v5 API. Pinterest's
// "save" maps to our shares field.
func (s *Service) fetchPinterest(ctx context.Context, item ContentItem) ApiResponse {
	cfg := s.config(PlatformPinterest)
	if cfg.AccessToken == "" {
		return failure(notConfiguredError(PlatformPinterest, "access token"))
	}

	pinID, err := platformid.Extract(item.OriginalURL, PlatformPinterest)
	if err != nil {
		return ApiResponse{Success: false, Error: "could not extract pinterest pin id from url"}
	}

	q := url.Values{}
	q.Set("access_token", cfg.AccessToken)

	body, resp, err := s.getJSON(ctx, PlatformPinterest, s.endpoints.pinterest+"/pins/"+url.PathEscape(pinID)+"?"+q.Encode(), nil)
	if err != nil {
		return failure(err)
	}

	data, err := NormalizePinterest(body)
	if err != nil {
		return failure(err)
	}

	return ApiResponse{Success: true, Data: data, RateLimitRemaining: rateLimitRemaining(resp)}
}
