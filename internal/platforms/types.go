// Package platforms fetches engagement metrics from social platform APIs and
// normalizes their heterogeneous payloads into one common record shape.
package platforms

// Platform names accepted by the service. Dispatch lower-cases the inbound
// name, so callers may send any casing.
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformFacebook  = "facebook"
	PlatformPinterest = "pinterest"
	PlatformSpotify   = "spotify"
)

// ContentItem is the inbound description of one piece of creator content.
type ContentItem struct {
	OriginalURL string   `json:"originalUrl"`
	Platforms   []string `json:"platforms"`
	Title       string   `json:"title,omitempty"`
}

// PlatformViewData is the normalized metrics record. Views is always present
// and defaults to 0 for platforms with no view concept; the engagement fields
// are populated only where the platform's API exposes them.
type PlatformViewData struct {
	Platform        string `json:"platform"`
	Views           int64  `json:"views"`
	Likes           int64  `json:"likes,omitempty"`
	Shares          int64  `json:"shares,omitempty"`
	Comments        int64  `json:"comments,omitempty"`
	Duration        string `json:"duration,omitempty"`
	SubscriberCount int64  `json:"subscriberCount,omitempty"`
	Followers       int64  `json:"followers,omitempty"`
	TrackCount      int64  `json:"trackCount,omitempty"`
	LastUpdated     string `json:"lastUpdated,omitempty"`
	Error           string `json:"error,omitempty"`
}

// ApiResponse wraps a single-platform fetch result. Exactly one of Data or
// Error is meaningful; Success disambiguates.
type ApiResponse struct {
	Success            bool              `json:"success"`
	Data               *PlatformViewData `json:"data,omitempty"`
	Error              string            `json:"error,omitempty"`
	RateLimitRemaining int64             `json:"rateLimitRemaining,omitempty"`
}

// AggregatedPlatformData holds sums and averages over many content items,
// recomputed from scratch on every aggregation call.
//
// TotalVideos counts every matched item, including ones whose fetch failed;
// failed items contribute zero to the sums.
type AggregatedPlatformData struct {
	TotalVideos            int    `json:"totalVideos"`
	TotalViews             int64  `json:"totalViews"`
	TotalLikes             int64  `json:"totalLikes"`
	TotalComments          int64  `json:"totalComments"`
	TotalDuration          string `json:"totalDuration"`
	AverageSubscriberCount int64  `json:"averageSubscriberCount"`
	LastUpdated            string `json:"lastUpdated"`
}

// PlatformConfig is the per-platform credential bag. Which fields matter
// depends on the platform: YouTube wants APIKey, most others an AccessToken,
// Spotify additionally a client ID/secret for token exchange.
type PlatformConfig struct {
	APIKey       string
	AccessToken  string
	ClientID     string
	ClientSecret string
}

// Configured reports whether the config carries a usable credential.
func (c PlatformConfig) Configured() bool {
	return c.APIKey != "" || c.AccessToken != ""
}
