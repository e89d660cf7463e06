package cache

import (
	"context"
	"fmt"
	"time"

	"homematch-search/pkg/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis and verifies the connection with a ping.
// Used as the shared search-cache backend in multi-instance deployments.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}
	return client, nil
}
