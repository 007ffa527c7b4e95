package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the gateway
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Admin backend
	UpstreamBaseURL string
	UpstreamTimeout int // seconds

	// Listing pipeline
	PageSize       int
	ListFetchLimit int

	// Related complaints shown on the detail page
	RelatedLimit int

	// Category cache refresh (cron spec with seconds field)
	CatalogRefreshSpec string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", ""),
		UpstreamTimeout: getIntEnv("UPSTREAM_TIMEOUT_SECONDS", 15),

		PageSize:       getIntEnv("PAGE_SIZE", 9),
		ListFetchLimit: getIntEnv("LIST_FETCH_LIMIT", 500),
		RelatedLimit:   getIntEnv("RELATED_LIMIT", 3),

		CatalogRefreshSpec: getEnv("CATALOG_REFRESH_SPEC", "0 */10 * * * *"),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.UpstreamBaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}

	if c.ListFetchLimit < c.PageSize {
		return fmt.Errorf("LIST_FETCH_LIMIT must be at least PAGE_SIZE")
	}

	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be positive")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
