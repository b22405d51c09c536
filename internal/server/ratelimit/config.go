package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	return ConfigFromEnv(os.LookupEnv)
}

// ConfigFromEnv builds the configuration from RATE_LIMIT_* variables read
// through lookup. Unparseable values fall back to the defaults.
func ConfigFromEnv(lookup func(string) (string, bool)) *Config {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	intOr := func(key string, def int) int {
		if n, err := strconv.Atoi(get(key)); err == nil {
			return n
		}
		return def
	}
	durationOr := func(key string, def time.Duration) time.Duration {
		if d, err := time.ParseDuration(get(key)); err == nil {
			return d
		}
		return def
	}

	if enabled, err := strconv.ParseBool(get("RATE_LIMIT_ENABLED")); err == nil && !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    intOr("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   durationOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: durationOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(get("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(get("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Reference sync hits external endpoints and may poll for a minute
		{Path: "/references/sync", Method: "POST", Limit: 6, Window: time.Hour, Burst: 1},

		// Extraction is CPU bound but cheap per document
		{Path: "/extract", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Everything else uses the default limit; health checks are unlimited
	}
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
