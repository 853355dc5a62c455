package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the budget for one route
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Requests per window, 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	IdleTimeout   time.Duration // Buckets unused this long are pruned
	Whitelist     map[string]bool
	Blacklist     map[string]bool
	Endpoints     []EndpointConfig
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:       true,
		DefaultLimit:  getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow: getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		IdleTimeout:   getEnvDuration("RATE_LIMIT_IDLE_TIMEOUT", time.Hour),
		Whitelist:     parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:     parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		Endpoints:     DefaultEndpointConfigs(getEnvInt("RATE_LIMIT_OPTIMIZE_PER_HOUR", 30)),
	}
}

// DefaultEndpointConfigs budgets the routes that spend model quota.
// Everything else falls back to the default limit.
func DefaultEndpointConfigs(optimizePerHour int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/optimize", Method: "POST", Limit: optimizePerHour, Window: time.Hour, Burst: 3},
		{Path: "/session/submit", Method: "POST", Limit: optimizePerHour, Window: time.Hour, Burst: 3},
		{Path: "/session/events", Method: "GET", Limit: 0},
	}
}

func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
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
