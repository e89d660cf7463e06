package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "homematch-search/internal/errors"
	"homematch-search/internal/models"
	"homematch-search/internal/providers"
	"homematch-search/internal/repositories"
	"homematch-search/pkg/logger"
	"homematch-search/pkg/metrics"

	"github.com/panjf2000/ants/v2"
)

// Aggregator fans a search out to every configured provider concurrently,
// tolerates partial failure, and merges whatever succeeded.
//
// In lenient mode (the default) an empty merged result falls back to the
// synthetic generator. In strict mode it is a hard NoResultsError, so
// callers can trust that any non-error result reflects live data.
type Aggregator struct {
	providers []providers.Provider
	fallback  providers.Provider
	cache     repositories.SearchCache
	pool      *ants.Pool
	timeout   time.Duration
	strict    bool
	log       *logger.Logger
}

// NewAggregator creates an Aggregator. The pool bounds total concurrent
// provider calls across requests; pass nil to run unbounded goroutines.
func NewAggregator(
	providerList []providers.Provider,
	fallback providers.Provider,
	cache repositories.SearchCache,
	pool *ants.Pool,
	timeout time.Duration,
	strict bool,
	log *logger.Logger,
) *Aggregator {
	return &Aggregator{
		providers: providerList,
		fallback:  fallback,
		cache:     cache,
		pool:      pool,
		timeout:   timeout,
		strict:    strict,
		log:       log,
	}
}

// Aggregate returns the merged provider results for criteria, consulting the
// cache first and writing back on success. Merge order across providers is
// unspecified; the scorer and ranker impose the final deterministic order.
func (a *Aggregator) Aggregate(ctx context.Context, criteria models.SearchCriteria) ([]models.Property, error) {
	if cached, err := a.cache.Get(ctx, criteria); err != nil {
		a.log.Errorf("cache get failed: %v", err)
	} else if cached != nil {
		metrics.CacheHitsTotal.Inc()
		a.log.Debugf("cache hit: city=%s, %d listings", criteria.City, len(cached))
		return cached, nil
	}
	metrics.CacheMissesTotal.Inc()

	merged, err := a.fanOut(ctx, criteria)
	if err != nil {
		return nil, &apperrors.AggregationError{Cause: err}
	}

	if len(merged) == 0 {
		if a.strict {
			return nil, &apperrors.NoResultsError{City: criteria.City}
		}
		a.log.Printf("no live results for city=%s, falling back to synthetic listings", criteria.City)
		metrics.SyntheticFallbacksTotal.Inc()
		merged, err = a.fallback.Search(ctx, criteria)
		if err != nil {
			return nil, &apperrors.AggregationError{Cause: fmt.Errorf("synthetic fallback: %v", err)}
		}
	}

	if err := a.cache.Put(ctx, criteria, merged); err != nil {
		a.log.Errorf("cache put failed: %v", err)
	}
	return merged, nil
}

// fanOut runs every provider concurrently. Each call carries its own
// timeout; a provider that times out or errors contributes nothing and
// never aborts its siblings.
func (a *Aggregator) fanOut(ctx context.Context, criteria models.SearchCriteria) ([]models.Property, error) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		merged    []models.Property
		submitErr error
	)

	for _, provider := range a.providers {
		provider := provider
		wg.Add(1)
		task := func() {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			start := time.Now()
			results, err := provider.Search(callCtx, criteria)
			metrics.ProviderRequestDuration.WithLabelValues(provider.Name()).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.ProviderRequestsTotal.WithLabelValues(provider.Name(), "error").Inc()
				a.log.Errorf("%v", apperrors.NewProviderError(provider.Name(), err))
				return
			}
			metrics.ProviderRequestsTotal.WithLabelValues(provider.Name(), "success").Inc()

			mu.Lock()
			merged = append(merged, results...)
			mu.Unlock()
		}

		if a.pool != nil {
			if err := a.pool.Submit(task); err != nil {
				wg.Done()
				submitErr = fmt.Errorf("failed to schedule provider %s: %v", provider.Name(), err)
				break
			}
		} else {
			go task()
		}
	}

	wg.Wait()
	if submitErr != nil {
		return nil, submitErr
	}
	return merged, nil
}
