package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port     int    `yaml:"port"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`
	Search struct {
		StrictMode             bool `yaml:"strict_mode"`
		MockMode               bool `yaml:"mock_mode"`
		MaxResults             int  `yaml:"max_results"`
		ProviderTimeoutSeconds int  `yaml:"provider_timeout_seconds"`
		MaxConcurrency         int  `yaml:"max_concurrency"`
	} `yaml:"search"`
	Cache struct {
		Backend    string `yaml:"backend"`
		TTLMinutes int    `yaml:"ttl_minutes"`
		Capacity   int    `yaml:"capacity"`
	} `yaml:"cache"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Providers struct {
		RentCast struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"rentcast"`
		Attom struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"attom"`
	} `yaml:"providers"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"`
		Burst             int `yaml:"burst"`
	} `yaml:"rate_limit"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT value: %v", err)
		}
		cfg.Server.Port = portNum
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Server.LogLevel = level
	}
	if strict := os.Getenv("SEARCH_STRICT_MODE"); strict != "" {
		cfg.Search.StrictMode = strict == "true"
	}
	if mock := os.Getenv("SEARCH_MOCK_MODE"); mock != "" {
		cfg.Search.MockMode = mock == "true"
	}
	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		cfg.Cache.Backend = backend
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_PORT value: %v", err)
		}
		cfg.Redis.Port = portNum
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if key := os.Getenv("RENTCAST_API_KEY"); key != "" {
		cfg.Providers.RentCast.APIKey = key
	}
	if key := os.Getenv("ATTOM_API_KEY"); key != "" {
		cfg.Providers.Attom.APIKey = key
	}

	// Set default values
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "INFO"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 15
	}
	if cfg.Search.ProviderTimeoutSeconds == 0 {
		cfg.Search.ProviderTimeoutSeconds = 10
	}
	if cfg.Search.MaxConcurrency == 0 {
		cfg.Search.MaxConcurrency = 16
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 10
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = 100
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Providers.RentCast.BaseURL == "" {
		cfg.Providers.RentCast.BaseURL = "https://api.rentcast.io/v1"
	}
	if cfg.Providers.Attom.BaseURL == "" {
		cfg.Providers.Attom.BaseURL = "https://api.gateway.attomdata.com/propertyapi/v1.0.0"
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 100
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}

	// Validation
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("CACHE_BACKEND must be memory or redis")
	}
	if cfg.Search.MaxResults < 1 {
		return nil, fmt.Errorf("search max_results must be positive")
	}
	if cfg.Cache.Capacity < 1 {
		return nil, fmt.Errorf("cache capacity must be positive")
	}

	return &cfg, nil
}

// ProviderTimeout returns the per-provider call timeout.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Search.ProviderTimeoutSeconds) * time.Second
}

// CacheTTL returns the search cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}
