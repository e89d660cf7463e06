package repositories

import (
	"context"
	"encoding/json"
	"time"

	"homematch-search/internal/models"
	"homematch-search/pkg/cache"

	"github.com/go-redis/redis/v8"
)

type redisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSearchCache creates a Redis-backed search cache for deployments
// that share results across instances. Capacity bounding is left to Redis
// itself (maxmemory policy); TTL semantics match the memory backend.
func NewRedisSearchCache(client *redis.Client, ttl time.Duration) SearchCache {
	return &redisSearchCache{client: client, ttl: ttl}
}

func (c *redisSearchCache) Get(ctx context.Context, criteria models.SearchCriteria) ([]models.Property, error) {
	data, err := c.client.Get(ctx, cache.CriteriaKey(criteria)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var properties []models.Property
	if err := json.Unmarshal([]byte(data), &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (c *redisSearchCache) Put(ctx context.Context, criteria models.SearchCriteria, properties []models.Property) error {
	data, err := json.Marshal(properties)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cache.CriteriaKey(criteria), data, c.ttl).Err()
}
