package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gyb.studio/pulse/internal/config"
)

// OpenRedisClient connects to Redis and verifies the connection with a ping.
func OpenRedisClient(ctx context.Context, conf config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: conf.RedisAddr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", conf.RedisAddr, err)
	}

	return client, nil
}
