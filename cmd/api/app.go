package main

import (
	"fmt"
	"net/http"
	"os"

	"homematch-search/internal/handlers"
	"homematch-search/internal/middleware"
	"homematch-search/internal/providers"
	"homematch-search/internal/repositories"
	"homematch-search/internal/services"
	"homematch-search/internal/validators"
	"homematch-search/pkg/cache"
	"homematch-search/pkg/config"
	"homematch-search/pkg/logger"
	"homematch-search/pkg/metrics"
	"homematch-search/pkg/rentcast"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
)

// App represents the application structure
type App struct {
	Config        *config.Config
	Log           *logger.Logger
	Router        *gin.Engine
	SearchHandler *handlers.SearchHandler
	RateLimiter   *middleware.RateLimiter
	Server        *http.Server

	pool *ants.Pool
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Log:    logger.New(os.Stdout, cfg.Server.LogLevel),
	}

	metrics.Init()

	if err := app.initializeDependencies(); err != nil {
		return nil, err
	}
	app.initializeRouter()

	app.Server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: app.Router,
	}
	return app, nil
}

// initialize all dependencies
func (a *App) initializeDependencies() error {
	cfg := a.Config

	searchCache, err := a.buildSearchCache()
	if err != nil {
		return err
	}

	pool, err := ants.NewPool(cfg.Search.MaxConcurrency)
	if err != nil {
		return fmt.Errorf("failed to create provider pool: %v", err)
	}
	a.pool = pool

	fallback := providers.NewSyntheticProvider()
	providerList := a.buildProviders(fallback)

	aggregator := services.NewAggregator(
		providerList,
		fallback,
		searchCache,
		pool,
		cfg.ProviderTimeout(),
		cfg.Search.StrictMode,
		a.Log,
	)

	searchService := services.NewSearchService(
		aggregator,
		services.NewDeduplicator(a.Log),
		services.NewScorer(),
		services.NewRanker(),
		services.NewAnnotator(),
		validators.NewCriteriaValidator(),
		cfg.Search.MaxResults,
		a.Log,
	)

	a.SearchHandler = handlers.NewSearchHandler(searchService)
	a.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	go a.RateLimiter.Cleanup()
	return nil
}

// buildSearchCache selects the cache backend. Memory is the default and
// carries the bounded, insertion-order-evicting semantics; redis shares
// entries across instances.
func (a *App) buildSearchCache() (repositories.SearchCache, error) {
	cfg := a.Config
	if cfg.Cache.Backend == "redis" {
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		a.Log.Printf("using redis search cache at %s:%d", cfg.Redis.Host, cfg.Redis.Port)
		return repositories.NewRedisSearchCache(client, cfg.CacheTTL()), nil
	}
	return repositories.NewMemorySearchCache(cfg.CacheTTL(), cfg.Cache.Capacity), nil
}

// buildProviders assembles the provider list. Mock mode runs the pipeline
// entirely on the synthetic generator, no credentials needed.
func (a *App) buildProviders(synthetic providers.Provider) []providers.Provider {
	cfg := a.Config
	if cfg.Search.MockMode {
		a.Log.Printf("mock mode: synthetic provider only")
		return []providers.Provider{synthetic}
	}

	var providerList []providers.Provider
	if cfg.Providers.RentCast.APIKey != "" {
		client := rentcast.NewClient(cfg.Providers.RentCast.APIKey, cfg.Providers.RentCast.BaseURL, a.Log)
		providerList = append(providerList, providers.NewRentCastProvider(client))
	}
	if cfg.Providers.Attom.APIKey != "" {
		providerList = append(providerList, providers.NewAttomProvider(cfg.Providers.Attom.APIKey, cfg.Providers.Attom.BaseURL))
	}
	if len(providerList) == 0 {
		a.Log.Printf("no provider credentials configured, falling back to synthetic provider")
		return []providers.Provider{synthetic}
	}
	return providerList
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

func (a *App) setupMiddleware() {
	a.Router.Use(middleware.LoggingMiddleware(a.Log))
	a.Router.Use(middleware.MetricsMiddleware())
	a.Router.Use(middleware.RateLimitMiddleware(a.RateLimiter))
	a.Router.Use(gin.Recovery())
}

// cleanup operations
func (a *App) cleanup() {
	if a.pool != nil {
		a.pool.Release()
	}
}
