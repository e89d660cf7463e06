package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "homematch-search/internal/errors"
	"homematch-search/internal/models"
	"homematch-search/internal/providers"
	"homematch-search/internal/repositories"
	"homematch-search/pkg/logger"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name    string
	results []models.Property
	err     error
	delay   time.Duration
	calls   int32
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(ctx context.Context, _ models.SearchCriteria) ([]models.Property, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *stubProvider) callCount() int {
	return int(atomic.LoadInt32(&s.calls))
}

func listings(source string, count int) []models.Property {
	properties := make([]models.Property, count)
	for i := range properties {
		properties[i] = models.Property{
			ID:      source + string(rune('a'+i)),
			Address: source + " St",
			Price:   float64(100000 + i*1000),
			Source:  source,
		}
	}
	return properties
}

func testAggregator(t *testing.T, providerList []providers.Provider, strict bool) *Aggregator {
	t.Helper()
	cache := repositories.NewMemorySearchCache(10*time.Minute, 100)
	return NewAggregator(
		providerList,
		providers.NewSyntheticProvider(),
		cache,
		nil,
		2*time.Second,
		strict,
		logger.Discard(),
	)
}

func TestAggregateToleratesPartialFailure(t *testing.T) {
	healthy := &stubProvider{name: "healthy", results: listings("healthy", 5)}
	broken := &stubProvider{name: "broken", err: errors.New("upstream 500")}

	agg := testAggregator(t, []providers.Provider{healthy, broken}, true)

	merged, err := agg.Aggregate(context.Background(), models.SearchCriteria{City: "Columbus"})
	require.NoError(t, err)
	assert.Len(t, merged, 5)
	assert.Equal(t, 1, broken.callCount())
}

func TestAggregateTimeoutTreatedAsFailure(t *testing.T) {
	fast := &stubProvider{name: "fast", results: listings("fast", 3)}
	slow := &stubProvider{name: "slow", results: listings("slow", 3), delay: 5 * time.Second}

	cache := repositories.NewMemorySearchCache(10*time.Minute, 100)
	agg := NewAggregator(
		[]providers.Provider{fast, slow},
		providers.NewSyntheticProvider(),
		cache,
		nil,
		50*time.Millisecond,
		true,
		logger.Discard(),
	)

	start := time.Now()
	merged, err := agg.Aggregate(context.Background(), models.SearchCriteria{City: "Columbus"})
	require.NoError(t, err)
	assert.Len(t, merged, 3, "only the fast provider contributes")
	assert.Less(t, time.Since(start), 2*time.Second, "slow provider must not stall the merge")
}

func TestAggregateStrictEmptyIsNoResults(t *testing.T) {
	empty := &stubProvider{name: "empty"}
	agg := testAggregator(t, []providers.Provider{empty}, true)

	_, err := agg.Aggregate(context.Background(), models.SearchCriteria{City: "Nowhere"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNoResults(err))

	var noResults *apperrors.NoResultsError
	require.ErrorAs(t, err, &noResults)
	assert.Equal(t, "Nowhere", noResults.City)
}

func TestAggregateLenientEmptyFallsBack(t *testing.T) {
	empty := &stubProvider{name: "empty"}
	agg := testAggregator(t, []providers.Provider{empty}, false)

	merged, err := agg.Aggregate(context.Background(), models.SearchCriteria{City: "Columbus", State: "OH"})
	require.NoError(t, err)
	require.NotEmpty(t, merged)
	for _, p := range merged {
		assert.Equal(t, "synthetic", p.Source)
	}
}

func TestAggregateCacheHitSkipsProviders(t *testing.T) {
	provider := &stubProvider{name: "live", results: listings("live", 4)}
	criteria := models.SearchCriteria{City: "Columbus", MaxPrice: 500000}

	cache := repositories.NewMemorySearchCache(10*time.Minute, 100)
	require.NoError(t, cache.Put(context.Background(), criteria, listings("cached", 2)))

	agg := NewAggregator(
		[]providers.Provider{provider},
		providers.NewSyntheticProvider(),
		cache,
		nil,
		time.Second,
		true,
		logger.Discard(),
	)

	merged, err := agg.Aggregate(context.Background(), criteria)
	require.NoError(t, err)
	assert.Len(t, merged, 2)
	assert.Equal(t, "cached", merged[0].Source)
	assert.Equal(t, 0, provider.callCount(), "cache hit must not touch providers")
}

func TestAggregateWritesBackToCache(t *testing.T) {
	provider := &stubProvider{name: "live", results: listings("live", 4)}
	criteria := models.SearchCriteria{City: "Columbus"}

	agg := testAggregator(t, []providers.Provider{provider}, true)

	_, err := agg.Aggregate(context.Background(), criteria)
	require.NoError(t, err)

	_, err = agg.Aggregate(context.Background(), criteria)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.callCount(), "second aggregate should be served from cache")
}

func TestAggregateWithWorkerPool(t *testing.T) {
	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer pool.Release()

	a := &stubProvider{name: "a", results: listings("a", 2)}
	b := &stubProvider{name: "b", results: listings("b", 3)}

	cache := repositories.NewMemorySearchCache(10*time.Minute, 100)
	agg := NewAggregator(
		[]providers.Provider{a, b},
		providers.NewSyntheticProvider(),
		cache,
		pool,
		time.Second,
		true,
		logger.Discard(),
	)

	merged, err := agg.Aggregate(context.Background(), models.SearchCriteria{City: "Columbus"})
	require.NoError(t, err)
	assert.Len(t, merged, 5)
}
