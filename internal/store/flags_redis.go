package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const flagKeyPrefix = "flag:"

// RedisFlagStore reads flag state from Redis on every check. Flags are
// toggled outside this service; a missing key falls back to the default
// configured for that flag.
type RedisFlagStore struct {
	client   *redis.Client
	defaults map[string]bool
}

// NewRedisFlagStore wraps an already connected client.
func NewRedisFlagStore(client *redis.Client, defaults map[string]bool) *RedisFlagStore {
	cp := make(map[string]bool, len(defaults))
	for name, enabled := range defaults {
		cp[strings.ToUpper(name)] = enabled
	}
	return &RedisFlagStore{client: client, defaults: cp}
}

// ConnectRedis parses url, opens a client and pings it.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func FlagKey(name string) string {
	return flagKeyPrefix + strings.ToUpper(name)
}

func (s *RedisFlagStore) IsEnabled(ctx context.Context, name string) (bool, error) {
	val, err := s.client.Get(ctx, FlagKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return s.defaults[strings.ToUpper(name)], nil
	}
	if err != nil {
		return false, fmt.Errorf("read flag %s: %w", name, err)
	}
	return parseFlagValue(val), nil
}

func parseFlagValue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "enabled":
		return true
	default:
		return false
	}
}
