package repositories

import (
	"context"

	"homematch-search/internal/models"
)

// SearchCache stores aggregated results keyed by normalized criteria.
// A nil, nil return from Get is a miss. Entries are immutable once written
// and replaced wholesale, so no cross-key locking is needed.
type SearchCache interface {
	Get(ctx context.Context, criteria models.SearchCriteria) ([]models.Property, error)
	Put(ctx context.Context, criteria models.SearchCriteria, properties []models.Property) error
}
