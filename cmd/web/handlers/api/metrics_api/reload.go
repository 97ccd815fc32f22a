package metrics_api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"gyb.studio/pulse/internal/config"
	"gyb.studio/pulse/internal/platforms"
	"gyb.studio/pulse/internal/spotifyauth"
)

type reloadRequest struct {
	SpotifyRefreshToken string `json:"spotifyRefreshToken,omitempty"`
}

type reloadResponse struct {
	Success   bool     `json:"success"`
	Platforms []string `json:"platforms"`
}

// HandleReload serves POST /api/metrics/reload.
//
// Re-reads credentials from the environment and swaps them into the running
// service, so a completed OAuth flow takes effect without a restart. When the
// request carries a Spotify refresh token, it is traded for a fresh access
// token first; otherwise a client-credentials exchange fills the gap if the
// deployment has a Spotify app but no token yet.
func HandleReload(svc *platforms.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req reloadRequest
		// Body is optional; a bare POST just re-reads the environment.
		_ = c.Bind(&req)

		conf, err := config.LoadConfig(ctx)
		if err != nil {
			return c.JSON(500, map[string]string{"error": "failed to reload configuration"})
		}

		configs := platforms.ConfigsFrom(conf)

		if conf.SpotifyClientID != "" && conf.SpotifyClientSecret != "" {
			spotify := spotifyauth.NewClient("", conf.SpotifyClientID, conf.SpotifyClientSecret)

			var token *spotifyauth.Token
			switch {
			case req.SpotifyRefreshToken != "":
				token, err = spotify.Refresh(ctx, req.SpotifyRefreshToken)
			case conf.SpotifyAccessToken == "":
				token, err = spotify.ClientCredentials(ctx)
			}
			if err != nil {
				slog.Warn("spotify token exchange failed during reload", "error", err)
			}
			if token != nil {
				spotifyConfig := configs[platforms.PlatformSpotify]
				spotifyConfig.AccessToken = token.AccessToken
				configs[platforms.PlatformSpotify] = spotifyConfig
			}
		}

		svc.Reload(configs)

		return c.JSON(200, reloadResponse{
			Success:   true,
			Platforms: svc.ConfiguredPlatforms(),
		})
	}
}
