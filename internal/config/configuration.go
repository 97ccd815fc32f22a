package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int `mapstructure:"WEBSERVER_PORT"`

	// Database Configuration
	DatabaseDSN     string `mapstructure:"DATABASE_DSN" validate:"required"`
	DatabaseRetries int    `mapstructure:"DATABASE_RETRIES"`

	// Metrics cache
	RedisAddr              string `mapstructure:"REDIS_ADDR"`
	MetricsCacheTTLSeconds int    `mapstructure:"METRICS_CACHE_TTL_SECONDS"`

	// Platform credentials. Only the platforms a deployment cares about need
	// to be set; unconfigured platforms short-circuit with a config error.
	YouTubeAPIKey string `mapstructure:"YOUTUBE_API_KEY"`

	InstagramAccessToken  string `mapstructure:"INSTAGRAM_ACCESS_TOKEN"`
	InstagramClientID     string `mapstructure:"INSTAGRAM_CLIENT_ID"`
	InstagramClientSecret string `mapstructure:"INSTAGRAM_CLIENT_SECRET"`

	TikTokAccessToken string `mapstructure:"TIKTOK_ACCESS_TOKEN"`
	TikTokClientID    string `mapstructure:"TIKTOK_CLIENT_ID"`

	FacebookAccessToken string `mapstructure:"FACEBOOK_ACCESS_TOKEN"`
	FacebookClientID    string `mapstructure:"FACEBOOK_CLIENT_ID"`

	PinterestAccessToken string `mapstructure:"PINTEREST_ACCESS_TOKEN"`

	SpotifyAccessToken  string `mapstructure:"SPOTIFY_ACCESS_TOKEN"`
	SpotifyClientID     string `mapstructure:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `mapstructure:"SPOTIFY_CLIENT_SECRET"`
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" {
			viper.BindEnv(tag)
		}

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct && tag == "" {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedField := nestedTyp.Field(j)
				nestedTag := nestedField.Tag.Get("mapstructure")
				if nestedTag != "" {
					viper.BindEnv(nestedTag)
				}
			}
		}
	}
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("DATABASE_RETRIES", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("METRICS_CACHE_TTL_SECONDS", 300)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Never log the credential fields themselves.
	slog.Info("Loaded configuration",
		"webserver_port", cfg.WebServerPort,
		"redis_addr", cfg.RedisAddr,
		"cache_ttl_seconds", cfg.MetricsCacheTTLSeconds,
	)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
