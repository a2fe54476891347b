package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// CacheConfig defines settings for the catalog response cache middleware.
// The benefit and category catalogs change rarely upstream, so successful
// GET responses are cached in Redis for a short TTL.  When Enabled is false
// or no Redis client is configured, caching is disabled and every request
// goes to the upstream API.  KeyStrategy determines which parts of the
// request contribute to the cache key; the categories endpoint varies by its
// ?type= query, so the default strategy includes the query string.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.  All methods are upper-cased.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CATALOG_CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(getenv("CATALOG_CACHE_METHODS", "GET")),
		TTL:          parseDur(getenv("CATALOG_CACHE_TTL", "5m")),
		KeyStrategy:  getenv("CATALOG_CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       getenv("CATALOG_CACHE_PREFIX", "catalog"),
		MaxBodyBytes: atoi(getenv("CATALOG_CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}

// Helper functions shared with ratelimit.go
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
