package web

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gyb.studio/pulse/cmd/web/handlers/api/metrics_api"
	"gyb.studio/pulse/internal/db"
	"gyb.studio/pulse/internal/metricscache"
	"gyb.studio/pulse/internal/platforms"
)

type Webserver struct {
	*echo.Echo
	dbc   *db.DatabaseConnection
	svc   *platforms.Service
	cache *metricscache.Cache
}

func NewWebserver(dbc *db.DatabaseConnection, svc *platforms.Service, cache *metricscache.Cache) (*Webserver, error) {
	e := echo.New()

	webserver := &Webserver{
		Echo:  e,
		dbc:   dbc,
		svc:   svc,
		cache: cache,
	}

	if err := webserver.registerRoutes(); err != nil {
		return nil, err
	}

	if err := webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	return webserver, nil
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit("2M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	return nil
}

func (s *Webserver) registerRoutes() error {
	apiGroup := s.Group("/api")

	apiGroup.GET("/metrics/platforms", metrics_api.HandlePlatforms(s.svc))
	apiGroup.GET("/metrics/history/:platform", metrics_api.HandleHistory(s.dbc))
	apiGroup.GET("/metrics/:platform", metrics_api.HandleFetchPlatform(s.svc, s.cache, s.dbc))
	apiGroup.POST("/metrics/item", metrics_api.HandleFetchItem(s.svc, s.cache, s.dbc))
	apiGroup.POST("/metrics/aggregate", metrics_api.HandleAggregate(s.svc))
	apiGroup.POST("/metrics/reload", metrics_api.HandleReload(s.svc))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	return nil
}
