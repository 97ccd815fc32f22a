package platforms

import "gyb.studio/pulse/internal/config"

// ConfigsFrom maps the loaded environment configuration onto the per-platform
// credential bags the Service owns. Used both at construction and when the
// credential map is reloaded after a token refresh.
func ConfigsFrom(conf *config.Config) map[string]PlatformConfig {
	return map[string]PlatformConfig{
		PlatformYouTube: {
			APIKey: conf.YouTubeAPIKey,
		},
		PlatformInstagram: {
			AccessToken:  conf.InstagramAccessToken,
			ClientID:     conf.InstagramClientID,
			ClientSecret: conf.InstagramClientSecret,
		},
		PlatformTikTok: {
			AccessToken: conf.TikTokAccessToken,
			ClientID:    conf.TikTokClientID,
		},
		PlatformFacebook: {
			AccessToken: conf.FacebookAccessToken,
			ClientID:    conf.FacebookClientID,
		},
		PlatformPinterest: {
			AccessToken: conf.PinterestAccessToken,
		},
		PlatformSpotify: {
			AccessToken:  conf.SpotifyAccessToken,
			ClientID:     conf.SpotifyClientID,
			ClientSecret: conf.SpotifyClientSecret,
		},
	}
}
