package repositories

import (
	"context"
	"time"

	"homematch-search/internal/models"
	"homematch-search/pkg/cache"
)

type memorySearchCache struct {
	store *cache.Store
}

// NewMemorySearchCache creates the default in-process search cache: bounded,
// insertion-order evicting, TTL-expiring.
func NewMemorySearchCache(ttl time.Duration, capacity int) SearchCache {
	return &memorySearchCache{store: cache.NewStore(ttl, capacity)}
}

func (c *memorySearchCache) Get(_ context.Context, criteria models.SearchCriteria) ([]models.Property, error) {
	properties, ok := c.store.Get(cache.CriteriaKey(criteria))
	if !ok {
		return nil, nil
	}
	return properties, nil
}

func (c *memorySearchCache) Put(_ context.Context, criteria models.SearchCriteria, properties []models.Property) error {
	c.store.Put(cache.CriteriaKey(criteria), properties)
	return nil
}
