package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by INSURANCE_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("INSURANCE_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; real env vars always win.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	return intOr("SERVER_PORT", 8080)
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// VehicleServiceURL is the base URL lookups are appended to.
func VehicleServiceURL() string {
	return stringOr("VEHICLE_SERVICE_URL", "http://localhost:8081/vehicles")
}

// VehicleProvider returns the vehicle client implementation.
// Valid values: http, mock
func VehicleProvider() string {
	return strings.ToLower(stringOr("VEHICLE_PROVIDER", "http"))
}

// VehicleTimeout bounds a single vehicle lookup. Defaults to 2s.
func VehicleTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("VEHICLE_TIMEOUT"))
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// EnrichConcurrency caps parallel vehicle lookups per request.
// Defaults to 1 (sequential).
func EnrichConcurrency() int {
	return intOr("ENRICH_CONCURRENCY", 1)
}

// FlagStore returns the feature flag backend.
// Valid values: memory, redis
func FlagStore() string {
	return strings.ToLower(stringOr("FLAG_STORE", "memory"))
}

func RedisURL() string {
	return os.Getenv("REDIS_URL")
}

// DiscountCampaignEnabled seeds DISCOUNT_CAMPAIGN in the memory flag store
// and is the fallback for a missing Redis key. Defaults to true.
func DiscountCampaignEnabled() bool {
	enabled, err := strconv.ParseBool(os.Getenv("DISCOUNT_CAMPAIGN_ENABLED"))
	if err != nil {
		return true
	}
	return enabled
}

// RegistrySeedPath points at a YAML seed file. Empty means the built-in seed.
func RegistrySeedPath() string {
	return os.Getenv("REGISTRY_SEED_PATH")
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	return intOr("RATE_LIMIT_BURST", 20)
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	return stringOr("LOG_LEVEL", "info")
}

func VehicleMockPort() int {
	return intOr("VEHICLE_MOCK_PORT", 8081)
}

func VehicleMockAddr() string {
	return fmt.Sprintf(":%d", VehicleMockPort())
}

func stringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOr returns def for unset, malformed or non-positive values.
func intOr(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
