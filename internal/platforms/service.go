package platforms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type endpoints struct {
	youtube   string
	instagram string
	tiktok    string
	facebook  string
	pinterest string
	spotify   string
}

func defaultEndpoints() endpoints {
	return endpoints{
		youtube:   "https://www.googleapis.com/youtube/v3",
		instagram: "https://graph.instagram.com/v12.0",
		tiktok:    "https://open-api.tiktok.com",
		facebook:  "https://graph.facebook.com/v18.0",
		pinterest: "https://api.pinterest.com/v5",
		spotify:   "https://api.spotify.com/v1",
	}
}

// Service owns the per-platform credential map and dispatches fetches. The
// credential map is read-only during a fetch cycle and only replaced
// wholesale by Reload, so a single RWMutex covers it.
type Service struct {
	mu        sync.RWMutex
	configs   map[string]PlatformConfig
	http      *http.Client
	endpoints endpoints
}

// NewService builds a Service around a credential map. Construct one instance
// at application start and pass it by reference; tests construct their own
// with mock credentials.
func NewService(configs map[string]PlatformConfig) *Service {
	normalized := normalizeConfigKeys(configs)

	return &Service{
		configs: normalized,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		endpoints: defaultEndpoints(),
	}
}

func normalizeConfigKeys(configs map[string]PlatformConfig) map[string]PlatformConfig {
	normalized := make(map[string]PlatformConfig, len(configs))
	for platform, cfg := range configs {
		normalized[strings.ToLower(strings.TrimSpace(platform))] = cfg
	}
	return normalized
}

// Reload replaces the credential map, e.g. after an OAuth flow hands us a
// fresh token. In-flight fetches keep the snapshot they started with.
func (s *Service) Reload(configs map[string]PlatformConfig) {
	normalized := normalizeConfigKeys(configs)
	s.mu.Lock()
	s.configs = normalized
	s.mu.Unlock()
}

func (s *Service) config(platform string) PlatformConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configs[platform]
}

// IsPlatformConfigured reports whether a usable credential exists for the
// platform.
func (s *Service) IsPlatformConfigured(platform string) bool {
	return s.config(strings.ToLower(strings.TrimSpace(platform))).Configured()
}

// ConfiguredPlatforms returns the sorted list of platforms with credentials.
func (s *Service) ConfiguredPlatforms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.configs))
	for platform, cfg := range s.configs {
		if cfg.Configured() {
			out = append(out, platform)
		}
	}
	sort.Strings(out)
	return out
}

// FetchPlatformViews fetches and normalizes metrics for one platform of one
// content item. Every failure mode comes back as ApiResponse{Success: false};
// nothing escapes as a raw error.
func (s *Service) FetchPlatformViews(ctx context.Context, item ContentItem, platform string) ApiResponse {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case PlatformYouTube:
		return s.fetchYouTube(ctx, item)
	case PlatformInstagram:
		return s.fetchInstagram(ctx, item)
	case PlatformTikTok:
		return s.fetchTikTok(ctx, item)
	case PlatformFacebook:
		return s.fetchFacebook(ctx, item)
	case PlatformPinterest:
		return s.fetchPinterest(ctx, item)
	case PlatformSpotify:
		return s.fetchSpotify(ctx, item)
	default:
		return ApiResponse{Success: false, Error: fmt.Sprintf("no api implementation for platform: %s", platform)}
	}
}

// FetchAllPlatformViews iterates the item's declared platform list, one fetch
// per platform, continuing past individual failures. A failed platform is
// recorded inline as a zeroed row with Error set so the caller can always
// render a consistent table shape.
func (s *Service) FetchAllPlatformViews(ctx context.Context, item ContentItem) []PlatformViewData {
	results := make([]PlatformViewData, 0, len(item.Platforms))

	for _, platform := range item.Platforms {
		resp := s.FetchPlatformViews(ctx, item, platform)
		if resp.Success && resp.Data != nil {
			results = append(results, *resp.Data)
			continue
		}
		results = append(results, PlatformViewData{
			Platform:    strings.ToLower(strings.TrimSpace(platform)),
			Views:       0,
			LastUpdated: nowISO(),
			Error:       resp.Error,
		})
	}

	return results
}

func failure(err error) ApiResponse {
	return ApiResponse{Success: false, Error: err.Error()}
}

// getJSON issues a GET and returns the body for 2xx responses. Non-2xx
// responses become an HTTPError carrying a bounded excerpt of the error body.
func (s *Service) getJSON(ctx context.Context, platform string, rawURL string, header http.Header) ([]byte, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: build request: %w", platform, err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: request failed: %w", platform, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		return nil, resp, &HTTPError{
			Platform:   platform,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, resp, fmt.Errorf("%s: read response: %w", platform, err)
	}
	return body, resp, nil
}

// rateLimitRemaining reads the conventional X-RateLimit-Remaining header.
// Returns 0 when the platform doesn't send it.
func rateLimitRemaining(resp *http.Response) int64 {
	if resp == nil {
		return 0
	}
	v := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
