// Package redis stores settings in a single Redis hash so every app
// instance reads the same excluded-domain list.
package redis

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// DefaultHashKey is the hash holding all settings fields.
const DefaultHashKey = "edf:settings"

// SettingsRepo implements settings.Repository on a Redis hash.
type SettingsRepo struct {
	client  *backend.Client
	hashKey string
}

// NewSettingsRepo creates a Redis-backed settings repository. An empty
// hashKey uses DefaultHashKey.
func NewSettingsRepo(client *backend.Client, hashKey string) *SettingsRepo {
	if hashKey == "" {
		hashKey = DefaultHashKey
	}
	return &SettingsRepo{client: client, hashKey: hashKey}
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.hashKey, key).Result()
	if errors.Is(err, backend.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s/%s: %w", r.hashKey, key, err)
	}
	return v, true, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, r.hashKey, key, value).Err(); err != nil {
		return fmt.Errorf("redis hset %s/%s: %w", r.hashKey, key, err)
	}
	return nil
}

// Ping verifies the Redis connection.
func (r *SettingsRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
