package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "homematch-search/internal/errors"
	"homematch-search/internal/models"
	"homematch-search/pkg/logger"
	"homematch-search/pkg/rentcast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const saleListingJSON = `[{
	"id": "rc-123",
	"formattedAddress": "100 Main St, Columbus, OH 43004",
	"city": "Columbus",
	"state": "OH",
	"zipCode": "43004",
	"propertyType": "Single Family",
	"price": 480000,
	"bedrooms": 3,
	"bathrooms": 2,
	"squareFootage": 1900,
	"listedDate": "2026-08-25T00:00:00Z",
	"status": "Active",
	"description": "Charming home",
	"amenities": ["garage", "fenced yard"],
	"photoUrls": ["https://img.example/1.jpg"],
	"listingUrl": "https://rentcast.example/rc-123"
}]`

func TestRentCastMapsSaleListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "/listings/sale", r.URL.Path)
		assert.Equal(t, "Columbus", r.URL.Query().Get("city"))
		assert.Equal(t, "Active", r.URL.Query().Get("status"))
		w.Write([]byte(saleListingJSON))
	}))
	defer server.Close()

	provider := NewRentCastProvider(rentcast.NewClient("test-key", server.URL, logger.Discard()))

	results, err := provider.Search(context.Background(), models.SearchCriteria{
		City:            "Columbus",
		State:           "OH",
		TransactionType: models.TransactionBuy,
		MaxPrice:        500000,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	p := results[0]
	assert.Equal(t, "rc-123", p.ID)
	assert.Equal(t, "100 Main St, Columbus, OH 43004", p.Address)
	assert.Equal(t, models.TransactionBuy, p.TransactionType)
	assert.Equal(t, models.UnitHouse, p.UnitType, "Single Family resolves to house")
	assert.Equal(t, float64(480000), p.Price)
	assert.Equal(t, 3, p.Bedrooms)
	assert.Equal(t, 2.0, p.Bathrooms)
	assert.Equal(t, 1900, p.SquareFootage)
	assert.Equal(t, []string{"garage", "fenced yard"}, p.Features)
	assert.Equal(t, "rentcast", p.Source)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), p.ListedAt)
}

func TestRentCastQueriesBothEndpointsForAny(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	provider := NewRentCastProvider(rentcast.NewClient("test-key", server.URL, logger.Discard()))

	_, err := provider.Search(context.Background(), models.SearchCriteria{
		City:            "Columbus",
		TransactionType: models.TransactionAny,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/listings/sale", "/listings/rental/long-term"}, paths)
}

func TestRentCastPushesPropertyTypeFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Condo", r.URL.Query().Get("propertyType"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	provider := NewRentCastProvider(rentcast.NewClient("test-key", server.URL, logger.Discard()))

	_, err := provider.Search(context.Background(), models.SearchCriteria{
		City:            "Columbus",
		TransactionType: models.TransactionBuy,
		UnitType:        models.UnitCondo,
	})
	require.NoError(t, err)
}

func TestRentCastOmitsPropertyTypeWhenUnpinned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("propertyType"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	provider := NewRentCastProvider(rentcast.NewClient("test-key", server.URL, logger.Discard()))

	_, err := provider.Search(context.Background(), models.SearchCriteria{
		City:            "Columbus",
		TransactionType: models.TransactionBuy,
		UnitType:        models.UnitAny,
	})
	require.NoError(t, err)
}

func TestRentCastMalformedResponseIsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"`))
	}))
	defer server.Close()

	provider := NewRentCastProvider(rentcast.NewClient("test-key", server.URL, logger.Discard()))

	_, err := provider.Search(context.Background(), models.SearchCriteria{
		City:            "Columbus",
		TransactionType: models.TransactionBuy,
	})
	require.Error(t, err)
	var providerErr *apperrors.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "rentcast", providerErr.Provider)
}

func TestRentCastHonorsContextDuringRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewRentCastProvider(rentcast.NewClient("test-key", server.URL, logger.Discard()))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := provider.Search(ctx, models.SearchCriteria{
		City:            "Columbus",
		TransactionType: models.TransactionBuy,
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "retry backoff must respect the context deadline")
}
