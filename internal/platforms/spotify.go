package platforms

import (
	"context"
	"net/http"
	"net/url"

	"gyb.studio/pulse/internal/platformid"
)

// fetchSpotify dispatches between the track and playlist endpoints based on
// the URL shape. Tracks expose no public counts; playlists expose follower
// and track totals.
func (s *Service) fetchSpotify(ctx context.Context, item ContentItem) ApiResponse {
	cfg := s.config(PlatformSpotify)
	if cfg.AccessToken == "" {
		return failure(notConfiguredError(PlatformSpotify, "access token"))
	}

	id, kind, err := platformid.ExtractSpotify(item.OriginalURL)
	if err != nil {
		return ApiResponse{Success: false, Error: "could not extract spotify id from url"}
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+cfg.AccessToken)

	var endpoint string
	switch kind {
	case platformid.SpotifyPlaylist:
		endpoint = s.endpoints.spotify + "/playlists/" + url.PathEscape(id)
	default:
		endpoint = s.endpoints.spotify + "/tracks/" + url.PathEscape(id)
	}

	body, resp, err := s.getJSON(ctx, PlatformSpotify, endpoint, header)
	if err != nil {
		return failure(err)
	}

	var data *PlatformViewData
	if kind == platformid.SpotifyPlaylist {
		data, err = NormalizeSpotifyPlaylist(body)
	} else {
		data, err = NormalizeSpotifyTrack(body)
	}
	if err != nil {
		return failure(err)
	}

	return ApiResponse{Success: true, Data: data, RateLimitRemaining: rateLimitRemaining(resp)}
}
