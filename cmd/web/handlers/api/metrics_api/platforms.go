package metrics_api

import (
	"github.com/labstack/echo/v4"
	"gyb.studio/pulse/internal/platforms"
)

type platformInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// HandlePlatforms serves GET /api/metrics/platforms, listing the platforms
// that currently hold a usable credential.
func HandlePlatforms(svc *platforms.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		configured := svc.ConfiguredPlatforms()

		response := make([]platformInfo, len(configured))
		for i, name := range configured {
			response[i] = platformInfo{
				Name:        name,
				DisplayName: platforms.DisplayName(name),
			}
		}

		return c.JSON(200, response)
	}
}
