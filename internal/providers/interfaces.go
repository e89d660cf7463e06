package providers

import (
	"context"

	"homematch-search/internal/models"
)

// Provider is a single external source of property listings. Implementations
// own their wire format entirely: criteria go in, internal Property values
// come out, and failures surface as *errors.ProviderError.
type Provider interface {
	Name() string
	Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Property, error)
}
